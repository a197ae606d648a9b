package httperr

import "errors"

// Kind classifies a business error so callers can branch on the
// category instead of matching codes or messages.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindSlotConflict      Kind = "slot_conflict"
	KindPolicyViolation   Kind = "policy_violation"
	KindUnauthorized      Kind = "unauthorized"
	KindIllegalTransition Kind = "illegal_transition"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrSlotConflict(code string) error {
	return BusinessError{Kind: KindSlotConflict, Code: code}
}

func ErrPolicyViolation(code string) error {
	return BusinessError{Kind: KindPolicyViolation, Code: code}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

func ErrIllegalTransition(code string) error {
	return BusinessError{Kind: KindIllegalTransition, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
