package domain

// ErrorClass is the classified reason a flow ended in the error step
type ErrorClass string

const (
	ErrorClassNone                ErrorClass = ""
	ErrorClassUserRejected        ErrorClass = "UserRejected"
	ErrorClassInsufficientFunds   ErrorClass = "InsufficientFunds"
	ErrorClassBelowMinimum        ErrorClass = "BelowMinimum"
	ErrorClassExceedsMaximum      ErrorClass = "ExceedsMaximum"
	ErrorClassOperationClosed     ErrorClass = "OperationClosed"
	ErrorClassNothingToClaim      ErrorClass = "NothingToClaim"
	ErrorClassNothingStaked       ErrorClass = "NothingStaked"
	ErrorClassRewardPoolExhausted ErrorClass = "RewardPoolExhausted"
	ErrorClassReverted            ErrorClass = "Reverted"
	ErrorClassTimedOut            ErrorClass = "TimedOut"
	ErrorClassUnknown             ErrorClass = "Unknown"

	// local validation, raised before any network call
	ErrorClassWalletNotConnected  ErrorClass = "WalletNotConnected"
	ErrorClassInvalidAmount       ErrorClass = "InvalidAmount"
	ErrorClassUnsupportedCurrency ErrorClass = "UnsupportedCurrency"
)
