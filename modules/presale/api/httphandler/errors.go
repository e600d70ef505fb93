package httphandler

import (
	"github.com/gaze-network/presale-ledger/common/errs"
)

var errorCodes = map[errs.ErrorKind]string{
	errs.InvalidTiers:         "INVALID_TIERS",
	errs.InvalidTimeframe:     "INVALID_TIMEFRAME",
	errs.BuyAtLeastOneToken:   "BUY_AT_LEAST_ONE_TOKEN",
	errs.PresaleLimitExceeded: "PRESALE_LIMIT_EXCEEDED",
	errs.NotEnoughNative:      "NOT_ENOUGH_NATIVE",
	errs.NotEnoughAllowance:   "NOT_ENOUGH_ALLOWANCE",
	errs.InsufficientFunds:    "INSUFFICIENT_FUNDS",
	errs.OracleError:          "ORACLE_ERROR",
	errs.InsufficientTreasury: "INSUFFICIENT_TREASURY",
	errs.NothingToClaim:       "NOTHING_TO_CLAIM",
	errs.AlreadyClaimed:       "ALREADY_CLAIMED",
	errs.ZeroAddress:          "ZERO_ADDRESS",
	errs.ReentrantCall:        "REENTRANT_CALL",
	errs.NotOwner:             "NOT_OWNER",
	errs.Paused:               "PAUSED",
	errs.NotPaused:            "NOT_PAUSED",
	errs.InvalidArgument:      "INVALID_ARGUMENT",
	errs.Unsupported:          "UNSUPPORTED",
	errs.NotFound:             "NOT_FOUND",
	errs.OverflowUint64:       "OVERFLOW",
	errs.OverflowUint128:      "OVERFLOW",
	errs.OverflowUint256:      "OVERFLOW",
}

// toPublicError exposes sale failures to the caller. Other errors pass through
// and are reported as internal errors.
func toPublicError(err error) error {
	kind, ok := errs.KindOf(err)
	if !ok {
		return err
	}
	code, ok := errorCodes[kind]
	if !ok {
		return err
	}
	return errs.WithPublicMessageCode(err, "", code)
}
