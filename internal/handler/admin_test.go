package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

func TestHandleAdminSetMastery(t *testing.T) {
	var gotPlayer string
	var gotLevel int
	svc := &fakeService{
		setFn: func(_ context.Context, playerID string, _ domain.EnchantmentID, level int) error {
			gotPlayer, gotLevel = playerID, level
			return nil
		},
	}

	rec := postJSON(t, HandleAdminSetMastery(svc), "/api/v1/admin/mastery/set",
		AdminSetMasteryRequest{PlayerID: "player-1", EnchantmentID: sharpness.String(), Level: 5})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "player-1", gotPlayer)
	assert.Equal(t, 5, gotLevel)
	assert.Contains(t, rec.Body.String(), MsgSetLevelSuccess)
}

func TestHandleAdminSetMastery_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           AdminSetMasteryRequest
		svc            *fakeService
		expectedStatus int
	}{
		{
			name:           "Missing enchantment id",
			body:           AdminSetMasteryRequest{PlayerID: "player-1", Level: 3},
			svc:            &fakeService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative level",
			body:           AdminSetMasteryRequest{PlayerID: "player-1", EnchantmentID: sharpness.String(), Level: -1},
			svc:            &fakeService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown enchantment",
			body: AdminSetMasteryRequest{PlayerID: "player-1", EnchantmentID: "modpack:unheard_of", Level: 2},
			svc: &fakeService{
				setFn: func(context.Context, string, domain.EnchantmentID, int) error {
					return domain.Reject(domain.ErrUnknownEnchantment, "modpack:unheard_of")
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleAdminSetMastery(tt.svc), "/api/v1/admin/mastery/set", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandleAdminResetMastery(t *testing.T) {
	var gotResetBy string
	svc := &fakeService{
		resetFn: func(_ context.Context, _, resetBy string) error {
			gotResetBy = resetBy
			return nil
		},
	}

	rec := postJSON(t, HandleAdminResetMastery(svc), "/api/v1/admin/mastery/reset",
		AdminResetRequest{PlayerID: "player-1", ResetBy: "operator"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "operator", gotResetBy)
	assert.Contains(t, rec.Body.String(), MsgResetSuccess)
}

func TestHandleAdminResetMastery_DefaultsResetBy(t *testing.T) {
	var gotResetBy string
	svc := &fakeService{
		resetFn: func(_ context.Context, _, resetBy string) error {
			gotResetBy = resetBy
			return nil
		},
	}

	rec := postJSON(t, HandleAdminResetMastery(svc), "/api/v1/admin/mastery/reset",
		AdminResetRequest{PlayerID: "player-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", gotResetBy)
}

func TestHandleAdminStats(t *testing.T) {
	svc := &fakeService{
		statsFn: func(_ context.Context, playerID string) (*progression.Stats, error) {
			return &progression.Stats{
				PlayerID:            playerID,
				EnchantmentsLearned: 2,
				CombinedMastery:     6,
				TotalLevelsSpent:    77,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/mastery/stats?player_id=player-1", nil)
	rec := httptest.NewRecorder()
	HandleAdminStats(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var stats progression.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.EnchantmentsLearned)
	assert.Equal(t, 77, stats.TotalLevelsSpent)
}

func TestHandleAdminStats_MissingPlayerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/mastery/stats", nil)
	rec := httptest.NewRecorder()
	HandleAdminStats(&fakeService{})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
