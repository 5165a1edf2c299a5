package handler

import (
	"net/http"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/logger"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

// AdminSetMasteryRequest is the body for the admin set-level endpoint.
// Level 0 clears the mastery entry and its pending XP.
type AdminSetMasteryRequest struct {
	PlayerID      string `json:"player_id"      validate:"required"`
	EnchantmentID string `json:"enchantment_id" validate:"required,enchantment_id"`
	Level         int    `json:"level"          validate:"gte=0"`
}

// AdminResetRequest is the body for the admin reset endpoint.
type AdminResetRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	ResetBy  string `json:"reset_by"`
}

// HandleAdminSetMastery force-sets a player's mastery level
// @Summary Set mastery level
// @Description Force a mastery level without spending currency (admin/debug)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminSetMasteryRequest true "Set level details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/mastery/set [post]
func HandleAdminSetMastery(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdminSetMasteryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set mastery level"); err != nil {
			return
		}

		if err := svc.SetMasteryLevel(r.Context(), req.PlayerID, domain.EnchantmentID(req.EnchantmentID), req.Level); err != nil {
			respondServiceError(w, r, ErrMsgSetMasteryFailed, err)
			return
		}

		log.Info("Mastery level set by admin",
			"player_id", req.PlayerID,
			"enchantment", req.EnchantmentID,
			"level", req.Level)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSetLevelSuccess})
	}
}

// HandleAdminResetMastery wipes all mastery state for a player
// @Summary Reset mastery
// @Description Delete a player's entire mastery ledger (admin/debug)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminResetRequest true "Reset details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/mastery/reset [post]
func HandleAdminResetMastery(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdminResetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reset mastery"); err != nil {
			return
		}

		resetBy := req.ResetBy
		if resetBy == "" {
			resetBy = "admin"
		}

		if err := svc.ResetMastery(r.Context(), req.PlayerID, resetBy); err != nil {
			respondServiceError(w, r, ErrMsgResetFailed, err)
			return
		}

		log.Info("Mastery reset by admin", "player_id", req.PlayerID, "reset_by", resetBy)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgResetSuccess})
	}
}

// HandleAdminStats returns a player's mastery summary
// @Summary Mastery stats
// @Description Summarize a player's mastery footprint (admin/debug)
// @Tags admin
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} progression.Stats
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/mastery/stats [get]
func HandleAdminStats(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		stats, err := svc.Stats(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStatsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
