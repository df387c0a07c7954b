// ABOUTME: Error kinds for the ownership-scoped service layer
// ABOUTME: Distinguishes forbidden access from caller input mistakes
package crm

import "errors"

// ErrForbidden marks reads and writes against records owned by someone else.
// A caller may only touch contacts and activities whose owner attribute
// equals their own normalized email; there is no role-based sharing.
var ErrForbidden = errors.New("forbidden: record belongs to another owner")

// BadRequestError reports missing or malformed caller input.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return e.Reason
}
