//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

type profileResponse struct {
	PlayerID     string `json:"player_id"`
	Enchantments []struct {
		Enchantment string `json:"enchantment"`
		DecodedName string `json:"decoded_name"`
	} `json:"enchantments"`
}

func TestMasteryProfile_FreshPlayer(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/mastery/profile?player_id=staging-fresh", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var profile profileResponse
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if profile.PlayerID != "staging-fresh" {
		t.Errorf("Expected player_id 'staging-fresh', got %q", profile.PlayerID)
	}
	if len(profile.Enchantments) != 0 {
		t.Errorf("Expected empty profile for fresh player, got %d entries", len(profile.Enchantments))
	}
}

func TestMasteryPreview(t *testing.T) {
	resp, body := makeRequest(t, "GET",
		"/api/v1/mastery/preview?player_id=staging-fresh&enchantment_id=minecraft:sharpness&target_level=2", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var preview struct {
		TotalCost     int `json:"total_cost"`
		NextLevelCost int `json:"next_level_cost"`
	}
	if err := json.Unmarshal(body, &preview); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if preview.TotalCost <= 0 {
		t.Errorf("Expected positive total cost, got %d", preview.TotalCost)
	}
}

func TestMasteryPreview_BadTargetLevel(t *testing.T) {
	resp, _ := makeRequest(t, "GET",
		"/api/v1/mastery/preview?player_id=staging-fresh&enchantment_id=minecraft:sharpness&target_level=zero", nil)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestMasteryAbsorb_UnfundedPlayerRejected(t *testing.T) {
	body := map[string]interface{}{
		"player_id": "staging-unfunded",
		"item": map[string]interface{}{
			"kind":  "minecraft:enchanted_book",
			"count": 1,
			"stored_enchantments": map[string]int{
				"minecraft:sharpness": 1,
			},
		},
	}

	resp, respBody := makeRequest(t, "POST", "/api/v1/mastery/absorb", body)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", resp.StatusCode, respBody)
	}

	var rejection struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(respBody, &rejection); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if rejection.Reason != "insufficient_currency" {
		t.Errorf("Expected reason 'insufficient_currency', got %q", rejection.Reason)
	}
}
