package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound        = ErrorKind("Not Found")
	InvalidArgument = ErrorKind("Invalid Argument")
	Unsupported     = ErrorKind("Unsupported")
	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
	OverflowUint256 = ErrorKind("overflow uint256")
)

// Presale ledger failures. Every one of them aborts the call without a partial state change.
const (
	InvalidTiers         = ErrorKind("InvalidTiers")
	InvalidTimeframe     = ErrorKind("InvalidTimeframe")
	BuyAtLeastOneToken   = ErrorKind("BuyAtLeastOneToken")
	PresaleLimitExceeded = ErrorKind("PresaleLimitExceeded")
	NotEnoughNative      = ErrorKind("NotEnoughETH")
	NotEnoughAllowance   = ErrorKind("NotEnoughAllowance")
	InsufficientFunds    = ErrorKind("Insufficient funds")
	OracleError          = ErrorKind("OracleError")
	InsufficientTreasury = ErrorKind("Not enough balance")
	NothingToClaim       = ErrorKind("NothingToClaim")
	AlreadyClaimed       = ErrorKind("AlreadyClaimed")
	ZeroAddress          = ErrorKind("zero address")
	ReentrantCall        = ErrorKind("reentrant call")

	// access control
	NotOwner  = ErrorKind("Ownable: caller is not the owner")
	Paused    = ErrorKind("Pausable: paused")
	NotPaused = ErrorKind("Pausable: not paused")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
