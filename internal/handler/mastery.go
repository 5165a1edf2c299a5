package handler

import (
	"net/http"
	"strconv"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/logger"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

// AbsorbRequest is the body for the absorb endpoint. The item is the host
// inventory stack carrying the stored enchantment.
type AbsorbRequest struct {
	PlayerID string       `json:"player_id" validate:"required"`
	Item     *domain.Item `json:"item"      validate:"required"`
}

// ApplyRequest is the body for the apply endpoint.
type ApplyRequest struct {
	PlayerID      string       `json:"player_id"      validate:"required"`
	Item          *domain.Item `json:"item"           validate:"required"`
	EnchantmentID string       `json:"enchantment_id" validate:"required,enchantment_id"`
	TargetLevel   int          `json:"target_level"   validate:"required,gt=0"`
}

// TransferRequest is the body for the ledger transfer endpoint.
type TransferRequest struct {
	FromPlayerID string `json:"from_player_id" validate:"required"`
	ToPlayerID   string `json:"to_player_id"   validate:"required,nefield=FromPlayerID"`
}

// HandleAbsorb handles absorbing a stored enchantment into mastery
// @Summary Absorb enchantment
// @Description Consume one unit of a single-enchantment item to raise mastery by one level
// @Tags mastery
// @Accept json
// @Produce json
// @Param request body AbsorbRequest true "Absorb details"
// @Success 200 {object} progression.AbsorbResult
// @Failure 400 {object} RejectionResponse
// @Failure 409 {object} RejectionResponse
// @Failure 500 {object} ErrorResponse
// @Router /mastery/absorb [post]
func HandleAbsorb(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AbsorbRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Absorb enchantment"); err != nil {
			return
		}

		result, err := svc.TryAbsorb(r.Context(), req.PlayerID, req.Item)
		if err != nil {
			respondServiceError(w, r, ErrMsgAbsorbFailed, err)
			return
		}

		log.Info("Enchantment absorbed",
			"player_id", req.PlayerID,
			"enchantment", result.Enchantment,
			"new_mastery_level", result.NewMasteryLevel,
			"cost", result.Cost,
			"letters_unlocked", len(result.LettersUnlocked))

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleApply handles applying a mastered enchantment to an item
// @Summary Apply enchantment
// @Description Spend levels to enchant an item at the chosen level using held mastery
// @Tags mastery
// @Accept json
// @Produce json
// @Param request body ApplyRequest true "Apply details"
// @Success 200 {object} progression.ApplyResult
// @Failure 400 {object} RejectionResponse
// @Failure 409 {object} RejectionResponse
// @Failure 500 {object} ErrorResponse
// @Router /mastery/apply [post]
func HandleApply(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ApplyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Apply enchantment"); err != nil {
			return
		}

		result, err := svc.TrySelectAndApply(r.Context(), req.PlayerID, req.Item, domain.EnchantmentID(req.EnchantmentID), req.TargetLevel)
		if err != nil {
			respondServiceError(w, r, ErrMsgApplyFailed, err)
			return
		}

		log.Info("Enchantment applied",
			"player_id", req.PlayerID,
			"enchantment", result.Enchantment,
			"target_level", result.TargetLevel,
			"visible_level", result.VisibleLevel,
			"leveled_up", result.LeveledUp)

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleProfile returns a player's full mastery view
// @Summary Mastery profile
// @Description Get the full per-enchantment mastery and decoding view for a player
// @Tags mastery
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} progression.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /mastery/profile [get]
func HandleProfile(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		profile, err := svc.Profile(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProfileFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// HandlePreviewCost returns the cumulative absorb cost to a target level
// @Summary Preview absorb cost
// @Description Sum the absorb costs from current mastery to the target level
// @Tags mastery
// @Produce json
// @Param player_id query string true "Player ID"
// @Param enchantment_id query string true "Enchantment ID"
// @Param target_level query int true "Target mastery level"
// @Success 200 {object} progression.CostPreview
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /mastery/preview [get]
func HandlePreviewCost(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}
		enchantment, ok := GetQueryParam(r, w, "enchantment_id")
		if !ok {
			return
		}
		rawLevel, ok := GetQueryParam(r, w, "target_level")
		if !ok {
			return
		}
		targetLevel, err := strconv.Atoi(rawLevel)
		if err != nil || targetLevel <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidTargetLevel)
			return
		}

		preview, err := svc.PreviewAbsorbCost(r.Context(), playerID, domain.EnchantmentID(enchantment), targetLevel)
		if err != nil {
			respondServiceError(w, r, ErrMsgPreviewCostFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, preview)
	}
}

// HandleTransfer moves a mastery ledger between player identities
// @Summary Transfer mastery ledger
// @Description Move all mastery state from one player identity to another
// @Tags mastery
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /mastery/transfer [post]
func HandleTransfer(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer ledger"); err != nil {
			return
		}

		if err := svc.TransferLedger(r.Context(), req.FromPlayerID, req.ToPlayerID); err != nil {
			respondServiceError(w, r, ErrMsgTransferFailed, err)
			return
		}

		log.Info("Mastery ledger transferred",
			"from_player_id", req.FromPlayerID,
			"to_player_id", req.ToPlayerID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTransferSuccess})
	}
}
