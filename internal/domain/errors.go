package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Absorb errors
	ErrMsgNoEnchantment        = "item carries no stored enchantment"
	ErrMsgMultipleEnchantments = "item carries more than one stored enchantment"
	ErrMsgUnknownEnchantment   = "unknown enchantment"
	ErrMsgProgressionGap       = "mastery levels must be absorbed in order"
	ErrMsgAlreadyLearned       = "mastery level already learned"

	// Shared transaction errors
	ErrMsgInsufficientCurrency = "not enough levels"

	// Apply errors
	ErrMsgMasteryTooLow       = "mastery level too low"
	ErrMsgItemIncompatible    = "enchantment cannot be applied to this item"
	ErrMsgEnchantmentConflict = "enchantment conflicts with an existing enchantment"

	// Input errors
	ErrMsgInvalidEnchantmentID = "invalid enchantment id"
	ErrMsgInvalidInput         = "invalid input"

	// Player errors
	ErrMsgPlayerNotFound = "player not found"
)

// Transaction rejection sentinels. Every Absorb/Apply rejection wraps exactly
// one of these; errors.Is distinguishes the closed reason set.
var (
	ErrNoEnchantment        = errors.New(ErrMsgNoEnchantment)
	ErrMultipleEnchantments = errors.New(ErrMsgMultipleEnchantments)
	ErrUnknownEnchantment   = errors.New(ErrMsgUnknownEnchantment)
	ErrProgressionGap       = errors.New(ErrMsgProgressionGap)
	ErrAlreadyLearned       = errors.New(ErrMsgAlreadyLearned)
	ErrInsufficientCurrency = errors.New(ErrMsgInsufficientCurrency)
	ErrMasteryTooLow        = errors.New(ErrMsgMasteryTooLow)
	ErrItemIncompatible     = errors.New(ErrMsgItemIncompatible)
	ErrEnchantmentConflict  = errors.New(ErrMsgEnchantmentConflict)

	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
)

// Rejection is a typed transaction failure. It wraps one of the sentinel
// errors above and carries the numbers needed to render a user-facing
// message (required vs available currency, required vs current mastery).
type Rejection struct {
	Err         error
	Enchantment EnchantmentID
	Required    int
	Available   int
}

func (r *Rejection) Error() string {
	return r.Err.Error()
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

// Reject builds a bare rejection for the given sentinel.
func Reject(sentinel error, enchantment EnchantmentID) *Rejection {
	return &Rejection{Err: sentinel, Enchantment: enchantment}
}

// RejectWithAmounts builds a rejection carrying a required/available pair.
func RejectWithAmounts(sentinel error, enchantment EnchantmentID, required, available int) *Rejection {
	return &Rejection{Err: sentinel, Enchantment: enchantment, Required: required, Available: available}
}

// IsRejection reports whether err is a transaction rejection, as opposed to
// an infrastructure failure. Rejections are user-facing and never leave the
// ledger partially mutated.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}
