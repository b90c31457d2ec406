package ldm

import "github.com/pkg/errors"

// Kind classifies an Error so callers can branch on failure category
// without parsing message text.
type Kind int

const (
	// KindIO is an underlying read/stat/ioctl failure; the errno is
	// carried in the wrapped cause.
	KindIO Kind = iota
	// KindNotLDM means the device is valid but carries no LDM metadata.
	KindNotLDM
	// KindInvalid is structural corruption: bad magic, out-of-range
	// offsets, count mismatches, unresolved cross-references, an
	// incomplete spanned record, or a volume-offset mismatch.
	KindInvalid
	// KindInconsistent means disks of the same disk group disagree on
	// committed sequence.
	KindInconsistent
	// KindNotSupported is an unsupported revision, volume/component
	// type combination, or mirror child shape.
	KindNotSupported
	// KindMissingDisk means a required disk is absent. In degradable
	// contexts (mirror, raid5) callers catch this and substitute a "-"
	// placeholder; in non-degradable contexts (linear, spanned,
	// striped) it is fatal.
	KindMissingDisk
	// KindInternal is a logic violation not expected on well-formed
	// input, such as a var-int width exceeding its target integer.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotLDM:
		return "not_ldm"
	case KindInvalid:
		return "invalid"
	case KindInconsistent:
		return "inconsistent"
	case KindNotSupported:
		return "notsupported"
	case KindMissingDisk:
		return "missing-disk"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every exported operation in this
// package; the Kind lets callers distinguish a missing disk (often
// recoverable) from structural corruption (never recoverable).
type Error struct {
	Kind Kind
	msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.msg + ": " + e.Err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func newErrf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error()}
}

func wrapErr(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
