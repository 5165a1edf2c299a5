//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAdminSetAndStatsRoundTrip(t *testing.T) {
	playerID := "staging-admin-target"

	setBody := map[string]interface{}{
		"player_id":      playerID,
		"enchantment_id": "minecraft:sharpness",
		"level":          3,
	}
	resp, body := makeRequest(t, "POST", "/api/v1/admin/mastery/set", setBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 on set, got %d: %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", "/api/v1/admin/mastery/stats?player_id="+playerID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 on stats, got %d: %s", resp.StatusCode, body)
	}

	var stats struct {
		EnchantmentsLearned int `json:"enchantments_learned"`
		CombinedMastery     int `json:"combined_mastery"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if stats.CombinedMastery < 3 {
		t.Errorf("Expected combined mastery >= 3 after set, got %d", stats.CombinedMastery)
	}

	// Cleanup so reruns start from a clean slate
	resetBody := map[string]interface{}{"player_id": playerID, "reset_by": "staging"}
	resp, body = makeRequest(t, "POST", "/api/v1/admin/mastery/reset", resetBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 on reset, got %d: %s", resp.StatusCode, body)
	}
}
