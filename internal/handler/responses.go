package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
	"github.com/korvus/EnchantMastery_Go/internal/logger"
	"github.com/korvus/EnchantMastery_Go/internal/metrics"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RejectionResponse is returned when a transaction is refused by the engine.
// Required/Available carry the pair behind the refusal (cost vs balance,
// target level vs mastery) when the rejection has one.
type RejectionResponse struct {
	Error       string `json:"error"`
	Reason      string `json:"reason"`
	Enchantment string `json:"enchantment,omitempty"`
	Required    int    `json:"required,omitempty"`
	Available   int    `json:"available,omitempty"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Absorb rejection messages
	ErrMsgNoEnchantmentError        = "That item carries no stored enchantment"
	ErrMsgMultipleEnchantmentsError = "That item carries more than one stored enchantment"
	ErrMsgUnknownEnchantmentError   = "Unknown enchantment"
	ErrMsgProgressionGapError       = "Mastery levels must be absorbed in order"
	ErrMsgAlreadyLearnedError       = "You have already learned that mastery level"

	// Apply rejection messages
	ErrMsgMasteryTooLowError       = "Your mastery is too low for that level"
	ErrMsgItemIncompatibleError    = "That enchantment cannot be applied to this item"
	ErrMsgEnchantmentConflictError = "That enchantment conflicts with one already on the item"

	// Shared transaction messages
	ErrMsgNotEnoughLevelsError = "Not enough levels"

	// Player messages
	ErrMsgPlayerNotFoundError = "Player not found"
)

// Rejection reason tokens, used as the metrics label and in the JSON body.
const (
	ReasonNoEnchantment        = "no_enchantment"
	ReasonMultipleEnchantments = "multiple_enchantments"
	ReasonUnknownEnchantment   = "unknown_enchantment"
	ReasonProgressionGap       = "progression_gap"
	ReasonAlreadyLearned       = "already_learned"
	ReasonInsufficientCurrency = "insufficient_currency"
	ReasonMasteryTooLow        = "mastery_too_low"
	ReasonItemIncompatible     = "item_incompatible"
	ReasonEnchantmentConflict  = "enchantment_conflict"
	ReasonUnknown              = "unknown"
)

// rejectionDetails maps a rejection's sentinel to HTTP status, user-facing
// message and metrics reason token.
func rejectionDetails(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrNoEnchantment):
		return http.StatusBadRequest, ErrMsgNoEnchantmentError, ReasonNoEnchantment
	case errors.Is(err, domain.ErrMultipleEnchantments):
		return http.StatusBadRequest, ErrMsgMultipleEnchantmentsError, ReasonMultipleEnchantments
	case errors.Is(err, domain.ErrUnknownEnchantment):
		return http.StatusBadRequest, ErrMsgUnknownEnchantmentError, ReasonUnknownEnchantment
	case errors.Is(err, domain.ErrProgressionGap):
		return http.StatusConflict, ErrMsgProgressionGapError, ReasonProgressionGap
	case errors.Is(err, domain.ErrAlreadyLearned):
		return http.StatusConflict, ErrMsgAlreadyLearnedError, ReasonAlreadyLearned
	case errors.Is(err, domain.ErrInsufficientCurrency):
		return http.StatusBadRequest, ErrMsgNotEnoughLevelsError, ReasonInsufficientCurrency
	case errors.Is(err, domain.ErrMasteryTooLow):
		return http.StatusBadRequest, ErrMsgMasteryTooLowError, ReasonMasteryTooLow
	case errors.Is(err, domain.ErrItemIncompatible):
		return http.StatusBadRequest, ErrMsgItemIncompatibleError, ReasonItemIncompatible
	case errors.Is(err, domain.ErrEnchantmentConflict):
		return http.StatusConflict, ErrMsgEnchantmentConflictError, ReasonEnchantmentConflict
	}
	return http.StatusBadRequest, ErrMsgInvalidRequestError, ReasonUnknown
}

// respondServiceError converts a service error to the matching HTTP response.
// Rejections become structured 4xx bodies and count toward the rejection
// metric; invalid input becomes a plain 400; everything else is a logged 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	var rej *domain.Rejection
	if errors.As(err, &rej) {
		status, message, reason := rejectionDetails(rej)
		metrics.RecordRejection(reason)
		log.Info("Transaction rejected",
			"operation", opName,
			"reason", reason,
			"enchantment", rej.Enchantment,
			"required", rej.Required,
			"available", rej.Available)
		respondJSON(w, status, RejectionResponse{
			Error:       message,
			Reason:      reason,
			Enchantment: rej.Enchantment.String(),
			Required:    rej.Required,
			Available:   rej.Available,
		})
		return
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}
	if errors.Is(err, domain.ErrPlayerNotFound) {
		respondError(w, http.StatusNotFound, ErrMsgPlayerNotFoundError)
		return
	}

	log.Error("Service call failed", "operation", opName, "error", err)
	respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
}
