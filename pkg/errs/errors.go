// Package errs defines the typed error taxonomy shared by every layer of
// the BLT codec, so callers can branch on intent (errors.Is/errors.As)
// rather than parse error text.
package errs

import "fmt"

// ErrKind classifies a BLT failure into one of the categories the format
// can produce. Every format failure raised in encode or decode carries
// exactly one of these; errors from the underlying io.Writer are passed
// through without one.
type ErrKind int

const (
	// ErrKindBadMagic means the first three bytes of a stream were not "BLT".
	ErrKindBadMagic ErrKind = iota
	// ErrKindUnsupportedVersion means the stream's major.minor exceeds what this library decodes.
	ErrKindUnsupportedVersion
	// ErrKindMalformedInput means a truncated stream, overlong varint, or unknown tag byte.
	ErrKindMalformedInput
	// ErrKindOutOfBoundsIndex means a symbol or template index exceeded its table.
	ErrKindOutOfBoundsIndex
	// ErrKindForwardReference means a node-table reference pointed at a position not yet populated.
	ErrKindForwardReference
	// ErrKindUnsupportedLiteral means the encoder has no registered handler for a literal's runtime type.
	ErrKindUnsupportedLiteral
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindBadMagic:
		return "BadMagic"
	case ErrKindUnsupportedVersion:
		return "UnsupportedVersion"
	case ErrKindMalformedInput:
		return "MalformedInput"
	case ErrKindOutOfBoundsIndex:
		return "OutOfBoundsIndex"
	case ErrKindForwardReference:
		return "ForwardReference"
	case ErrKindUnsupportedLiteral:
		return "UnsupportedLiteral"
	default:
		return "Unknown"
	}
}

// Error is a typed BLT error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("blt: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("blt: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, errs.ErrBadMagic) without matching on Msg/Err.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New constructs an *Error of the given kind, optionally wrapping cause.
func New(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Sentinel values for errors.Is checks against a specific kind, mirroring
// the convention of one exported zero-cause sentinel per kind.
var (
	ErrBadMagic           = &Error{Kind: ErrKindBadMagic, Msg: "magic bytes are not \"BLT\""}
	ErrUnsupportedVersion = &Error{Kind: ErrKindUnsupportedVersion, Msg: "file version is newer than supported"}
	ErrMalformedInput     = &Error{Kind: ErrKindMalformedInput, Msg: "malformed input stream"}
	ErrOutOfBoundsIndex   = &Error{Kind: ErrKindOutOfBoundsIndex, Msg: "index exceeds table length"}
	ErrForwardReference   = &Error{Kind: ErrKindForwardReference, Msg: "reference to a not-yet-populated node"}
	ErrUnsupportedLiteral = &Error{Kind: ErrKindUnsupportedLiteral, Msg: "no encoder registered for literal type"}
)
