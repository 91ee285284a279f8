package errors

// ErrorCode represents a standardized error code used throughout the bank core
type ErrorCode string

// Amount error codes (AMOUNT_*)
const (
	AmountNotPositive    ErrorCode = "AMOUNT_001"
	AmountExceedsBalance ErrorCode = "AMOUNT_002"
)

// Authorization error codes (AUTH_*)
const (
	AuthNotAuthenticated    ErrorCode = "AUTH_001"
	AuthWrongRole           ErrorCode = "AUTH_002"
	AuthNotOwner            ErrorCode = "AUTH_003"
	AuthTypePolicyViolation ErrorCode = "AUTH_004"
	AuthInvalidCredentials  ErrorCode = "AUTH_005"
	AuthThrottled           ErrorCode = "AUTH_006"
)

// Persistence error codes (STORE_*)
const (
	StoreUnreachable ErrorCode = "STORE_001"
	StoreConflict    ErrorCode = "STORE_002"
	StoreNotFound    ErrorCode = "STORE_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AmountNotPositive:    "Amount must be greater than zero",
	AmountExceedsBalance: "Withdrawal amount exceeds the account balance",

	AuthNotAuthenticated:    "Session is not authenticated",
	AuthWrongRole:           "Operation requires a different role",
	AuthNotOwner:            "Account does not belong to the acting customer",
	AuthTypePolicyViolation: "Account type does not permit this operation",
	AuthInvalidCredentials:  "Invalid user id or password",
	AuthThrottled:           "Too many authentication attempts. Please try again later",

	StoreUnreachable: "Persistence layer unreachable",
	StoreConflict:    "Concurrent update conflict. Please retry",
	StoreNotFound:    "Record not found",
}

// GetErrorMessage returns the default message for a given error code.
// If the error code is not found, it returns a generic error message.
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
