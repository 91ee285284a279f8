package errors

import "fmt"

// Error is a domain error carrying a stable code alongside its message.
// The four taxonomy values below are the only errors the engine surfaces to
// callers; everything lower-level is wrapped into one of them.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a domain error with the registered default message for code
func New(code ErrorCode) *Error {
	return &Error{Code: code, Message: GetErrorMessage(code)}
}

// Taxonomy sentinels. Compare with errors.Is; services wrap them with
// fmt.Errorf("...: %w", err) to add call-site context.
var (
	// ErrIllegalAmount rejects non-positive monetary input where positivity is required
	ErrIllegalAmount = New(AmountNotPositive)

	// ErrInsufficientFunds rejects a withdrawal exceeding the balance of a bounded-balance account
	ErrInsufficientFunds = New(AmountExceedsBalance)

	// ErrInsufficientPrivileges covers missing authentication, wrong role,
	// failed ownership verification and type-level policy blocks
	ErrInsufficientPrivileges = New(AuthNotAuthenticated)

	// ErrConnectionFailed covers unreachable persistence and indeterminate ownership reads
	ErrConnectionFailed = New(StoreUnreachable)

	// ErrConflict signals a lost-update conflict on concurrent balance mutation
	ErrConflict = New(StoreConflict)
)

// codedError carries a specific registry code while still matching its
// taxonomy sentinel under errors.Is.
type codedError struct {
	err      Error
	sentinel *Error
}

func (c *codedError) Error() string { return c.err.Error() }

func (c *codedError) Unwrap() error { return c.sentinel }

// Coded returns an error with the given code that unwraps to sentinel.
// Example: Coded(ErrInsufficientPrivileges, AuthNotOwner).
func Coded(sentinel *Error, code ErrorCode) error {
	return &codedError{
		err:      Error{Code: code, Message: GetErrorMessage(code)},
		sentinel: sentinel,
	}
}
