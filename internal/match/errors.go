package match

import (
	"errors"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrUnauthenticated   = errors.New("an authenticated user is required")
	ErrMatchNotFound     = errors.New("match not found")
	ErrUmpireNotFound    = errors.New("umpire not found")
	ErrMatchNotJoinable  = errors.New("match is not open for roster changes")
	ErrMatchNotEditable  = errors.New("match details can only be changed while it is upcoming")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("only the match creator or an admin can do this")
	ErrConflict          = errors.New("match was modified concurrently")
	ErrCapacityExceeded  = errors.New("team capacity would exceed players needed")
)

// FieldError is one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// validation collects FieldErrors for one request.
type validation struct {
	errs *multierror.Error
}

func (v *validation) add(field, message string) {
	v.errs = multierror.Append(v.errs, &FieldError{Field: field, Message: message})
}

func (v *validation) err() error {
	return v.errs.ErrorOrNil()
}

// FieldErrors flattens a validation failure into field -> message. It returns
// nil when err carries no field errors.
func FieldErrors(err error) map[string]string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var fe *FieldError
		if errors.As(err, &fe) {
			return map[string]string{fe.Field: fe.Message}
		}
		return nil
	}
	out := make(map[string]string)
	for _, e := range merr.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			if prev, ok := out[fe.Field]; ok {
				out[fe.Field] = prev + "; " + fe.Message
				continue
			}
			out[fe.Field] = fe.Message
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// fieldList is used in log lines.
func fieldList(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
