package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/holiman/uint256"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrAmountMustBeMoreThanZero zero amount
	ErrAmountMustBeMoreThanZero ErrorCode = 100100
	// ErrNotAllowedToken asset without a registered price source
	ErrNotAllowedToken ErrorCode = 100101
	// ErrLengthMismatch asset and price source lists differ in length
	ErrLengthMismatch ErrorCode = 100102
	// ErrDuplicateAsset asset registered twice
	ErrDuplicateAsset ErrorCode = 100103
	// ErrAmountOverflow amount does not fit in 256 bits
	ErrAmountOverflow ErrorCode = 100104

	// ErrTransferFailed asset or debt token movement failed
	ErrTransferFailed ErrorCode = 100200

	// ErrBreaksHealthFactor health factor below the minimum
	ErrBreaksHealthFactor ErrorCode = 100300
	// ErrHealthFactorOk liquidating a healthy account
	ErrHealthFactorOk ErrorCode = 100301
	// ErrHealthFactorNotImproved liquidation did not help
	ErrHealthFactorNotImproved ErrorCode = 100302
	// ErrInsufficientCollateral withdraw or seize above the deposited balance
	ErrInsufficientCollateral ErrorCode = 100303
	// ErrBurnAmountExceedsDebt burn above the minted debt
	ErrBurnAmountExceedsDebt ErrorCode = 100304

	// ErrStalePrice price older than the freshness window
	ErrStalePrice ErrorCode = 100400
	// ErrInvalidPriceFeed missing or misbehaving price source
	ErrInvalidPriceFeed ErrorCode = 100401

	// ErrMintFailed debt token refused to mint
	ErrMintFailed ErrorCode = 100500

	// ErrReentrantCall mutating call made from inside another one
	ErrReentrantCall ErrorCode = 100600
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                  "unknown error",
	ErrAmountMustBeMoreThanZero: "amount must be more than zero",
	ErrNotAllowedToken:          "token not allowed",
	ErrLengthMismatch:           "token addresses and price feed addresses must be the same length",
	ErrDuplicateAsset:           "token registered twice",
	ErrAmountOverflow:           "amount overflow",
	ErrTransferFailed:           "transfer failed",
	ErrBreaksHealthFactor:       "breaks health factor",
	ErrHealthFactorOk:           "health factor ok",
	ErrHealthFactorNotImproved:  "health factor not improved",
	ErrInsufficientCollateral:   "insufficient collateral",
	ErrBurnAmountExceedsDebt:    "burn amount exceeds debt",
	ErrStalePrice:               "stale price",
	ErrInvalidPriceFeed:         "invalid price feed",
	ErrMintFailed:               "mint failed",
	ErrReentrantCall:            "reentrant call",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// HealthFactorError solvency failure carrying the computed health factor
type HealthFactorError struct {
	Code   ErrorCode
	User   string
	Factor *uint256.Int
}

func (e *HealthFactorError) Error() string {
	return fmt.Sprintf("%s: user %s health factor %s", e.Code.Error(), e.User, e.Factor.Dec())
}

func (e *HealthFactorError) Unwrap() error {
	return e.Code
}

// PriceError oracle failure for one asset
type PriceError struct {
	Code       ErrorCode
	Asset      Asset
	ObservedAt time.Time
	Reason     string
}

func (e *PriceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code.Error(), e.Asset)
	if !e.ObservedAt.IsZero() {
		msg += " observed at " + e.ObservedAt.UTC().Format(time.RFC3339)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *PriceError) Unwrap() error {
	return e.Code
}

// CodeOf error code carried by err, ErrUnknown when none
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
