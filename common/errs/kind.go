package errs

import "github.com/cockroachdb/errors"

// presaleKinds is ordered from the most specific kind to the most generic one,
// ZeroAddress errors are also marked InvalidArgument.
var presaleKinds = []ErrorKind{
	InvalidTiers,
	InvalidTimeframe,
	BuyAtLeastOneToken,
	PresaleLimitExceeded,
	NotEnoughNative,
	NotEnoughAllowance,
	InsufficientFunds,
	OracleError,
	InsufficientTreasury,
	NothingToClaim,
	AlreadyClaimed,
	ZeroAddress,
	ReentrantCall,
	NotOwner,
	Paused,
	NotPaused,
	NotFound,
	Unsupported,
	OverflowUint64,
	OverflowUint128,
	OverflowUint256,
	InvalidArgument,
}

// KindOf returns the first known ErrorKind in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return "", false
	}
	for _, kind := range presaleKinds {
		if errors.Is(err, kind) {
			return kind, true
		}
	}
	return "", false
}
