package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

const sharpness = domain.EnchantmentID("minecraft:sharpness")

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func bookItem() *domain.Item {
	return &domain.Item{
		Kind:               "minecraft:enchanted_book",
		Count:              1,
		StoredEnchantments: map[domain.EnchantmentID]int{sharpness: 1},
	}
}

func TestHandleAbsorb(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		svc            *fakeService
		expectedStatus int
		check          func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			body: AbsorbRequest{PlayerID: "player-1", Item: bookItem()},
			svc: &fakeService{
				absorbFn: func(_ context.Context, playerID string, _ *domain.Item) (*progression.AbsorbResult, error) {
					return &progression.AbsorbResult{
						PlayerID:        playerID,
						Enchantment:     sharpness,
						NewMasteryLevel: 1,
						Cost:            5,
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var result progression.AbsorbResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, 1, result.NewMasteryLevel)
				assert.Equal(t, 5, result.Cost)
			},
		},
		{
			name: "Insufficient currency",
			body: AbsorbRequest{PlayerID: "player-1", Item: bookItem()},
			svc: &fakeService{
				absorbFn: func(context.Context, string, *domain.Item) (*progression.AbsorbResult, error) {
					return nil, domain.RejectWithAmounts(domain.ErrInsufficientCurrency, sharpness, 5, 3)
				},
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp RejectionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, ReasonInsufficientCurrency, resp.Reason)
				assert.Equal(t, 5, resp.Required)
				assert.Equal(t, 3, resp.Available)
			},
		},
		{
			name: "Already learned",
			body: AbsorbRequest{PlayerID: "player-1", Item: bookItem()},
			svc: &fakeService{
				absorbFn: func(context.Context, string, *domain.Item) (*progression.AbsorbResult, error) {
					return nil, domain.Reject(domain.ErrAlreadyLearned, sharpness)
				},
			},
			expectedStatus: http.StatusConflict,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp RejectionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, ReasonAlreadyLearned, resp.Reason)
			},
		},
		{
			name:           "Missing player id",
			body:           AbsorbRequest{Item: bookItem()},
			svc:            &fakeService{},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequestSummary)
			},
		},
		{
			name: "Service error",
			body: AbsorbRequest{PlayerID: "player-1", Item: bookItem()},
			svc: &fakeService{
				absorbFn: func(context.Context, string, *domain.Item) (*progression.AbsorbResult, error) {
					return nil, errors.New("store unavailable")
				},
			},
			expectedStatus: http.StatusInternalServerError,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), ErrMsgGenericServerError)
				assert.NotContains(t, rec.Body.String(), "store unavailable")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleAbsorb(tt.svc), "/api/v1/mastery/absorb", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.check(t, rec)
		})
	}
}

func TestHandleAbsorb_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mastery/absorb", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	HandleAbsorb(&fakeService{})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequest)
}

func TestHandleApply(t *testing.T) {
	validBody := ApplyRequest{
		PlayerID:      "player-1",
		Item:          &domain.Item{Kind: "minecraft:iron_sword", Count: 1},
		EnchantmentID: sharpness.String(),
		TargetLevel:   3,
	}

	tests := []struct {
		name           string
		body           interface{}
		svc            *fakeService
		expectedStatus int
		check          func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			body: validBody,
			svc: &fakeService{
				applyFn: func(_ context.Context, playerID string, _ *domain.Item, id domain.EnchantmentID, target int) (*progression.ApplyResult, error) {
					return &progression.ApplyResult{
						PlayerID:     playerID,
						Enchantment:  id,
						TargetLevel:  target,
						VisibleLevel: target,
						Cost:         17,
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var result progression.ApplyResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, 3, result.TargetLevel)
				assert.Equal(t, 17, result.Cost)
			},
		},
		{
			name: "Mastery too low",
			body: validBody,
			svc: &fakeService{
				applyFn: func(context.Context, string, *domain.Item, domain.EnchantmentID, int) (*progression.ApplyResult, error) {
					return nil, domain.RejectWithAmounts(domain.ErrMasteryTooLow, sharpness, 3, 2)
				},
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp RejectionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, ReasonMasteryTooLow, resp.Reason)
				assert.Equal(t, 3, resp.Required)
				assert.Equal(t, 2, resp.Available)
			},
		},
		{
			name: "Conflict",
			body: validBody,
			svc: &fakeService{
				applyFn: func(context.Context, string, *domain.Item, domain.EnchantmentID, int) (*progression.ApplyResult, error) {
					return nil, domain.Reject(domain.ErrEnchantmentConflict, sharpness)
				},
			},
			expectedStatus: http.StatusConflict,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp RejectionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, ReasonEnchantmentConflict, resp.Reason)
			},
		},
		{
			name: "Invalid enchantment id",
			body: ApplyRequest{
				PlayerID:      "player-1",
				Item:          &domain.Item{Kind: "minecraft:iron_sword", Count: 1},
				EnchantmentID: "Not An ID",
				TargetLevel:   1,
			},
			svc:            &fakeService{},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ValidationErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Contains(t, resp.Fields, "enchantmentid")
			},
		},
		{
			name: "Zero target level",
			body: ApplyRequest{
				PlayerID:      "player-1",
				Item:          &domain.Item{Kind: "minecraft:iron_sword", Count: 1},
				EnchantmentID: sharpness.String(),
			},
			svc:            &fakeService{},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequestSummary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, HandleApply(tt.svc), "/api/v1/mastery/apply", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.check(t, rec)
		})
	}
}

func TestHandleProfile(t *testing.T) {
	svc := &fakeService{
		profileFn: func(_ context.Context, playerID string) (*progression.Profile, error) {
			return &progression.Profile{PlayerID: playerID, Balance: 42}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mastery/profile?player_id=player-1", nil)
	rec := httptest.NewRecorder()
	HandleProfile(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var profile progression.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "player-1", profile.PlayerID)
	assert.Equal(t, 42, profile.Balance)
}

func TestHandleProfile_MissingPlayerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/mastery/profile", nil)
	rec := httptest.NewRecorder()
	HandleProfile(&fakeService{})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "player_id")
}

func TestHandlePreviewCost(t *testing.T) {
	svc := &fakeService{
		previewFn: func(_ context.Context, _ string, id domain.EnchantmentID, target int) (*progression.CostPreview, error) {
			return &progression.CostPreview{Enchantment: id, TargetLevel: target, TotalCost: 35}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/mastery/preview?player_id=player-1&enchantment_id=minecraft:sharpness&target_level=3", nil)
	rec := httptest.NewRecorder()
	HandlePreviewCost(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var preview progression.CostPreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, 35, preview.TotalCost)
}

func TestHandlePreviewCost_BadTargetLevel(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-2"} {
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/mastery/preview?player_id=player-1&enchantment_id=minecraft:sharpness&target_level="+raw, nil)
		rec := httptest.NewRecorder()
		HandlePreviewCost(&fakeService{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "target_level=%s", raw)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidTargetLevel)
	}
}

func TestHandleTransfer(t *testing.T) {
	var gotFrom, gotTo string
	svc := &fakeService{
		transferFn: func(_ context.Context, from, to string) error {
			gotFrom, gotTo = from, to
			return nil
		},
	}

	rec := postJSON(t, HandleTransfer(svc), "/api/v1/mastery/transfer",
		TransferRequest{FromPlayerID: "old-entity", ToPlayerID: "new-entity"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old-entity", gotFrom)
	assert.Equal(t, "new-entity", gotTo)
	assert.Contains(t, rec.Body.String(), MsgTransferSuccess)
}

func TestHandleTransfer_SamePlayer(t *testing.T) {
	rec := postJSON(t, HandleTransfer(&fakeService{}), "/api/v1/mastery/transfer",
		TransferRequest{FromPlayerID: "player-1", ToPlayerID: "player-1"})

	// Rejected by validation before the service is reached.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequestSummary)
}
