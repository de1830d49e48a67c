package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanvdc/blt/pkg/errs"
)

func TestError_FormatsWithAndWithoutCause(t *testing.T) {
	bare := errs.New(errs.ErrKindMalformedInput, "truncated stream", nil)
	assert.Equal(t, `blt: MalformedInput: truncated stream`, bare.Error())

	cause := fmt.Errorf("unexpected EOF")
	wrapped := errs.New(errs.ErrKindMalformedInput, "truncated stream", cause)
	assert.Contains(t, wrapped.Error(), "truncated stream")
	assert.Contains(t, wrapped.Error(), "unexpected EOF")
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("disk read failed")
	wrapped := errs.New(errs.ErrKindMalformedInput, "short read", cause)

	require.Error(t, wrapped)
	assert.Same(t, cause, errors.Unwrap(wrapped))
}

// TestError_IsMatchesByKindOnly mirrors how callers are expected to branch
// on a specific failure category rather than message text.
func TestError_IsMatchesByKindOnly(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		target  error
		wantIs  bool
	}{
		{"same kind, different message", errs.New(errs.ErrKindBadMagic, "saw XYZ", nil), errs.ErrBadMagic, true},
		{"same kind, wrapped cause", errs.New(errs.ErrKindForwardReference, "node 3 not yet written", fmt.Errorf("boom")), errs.ErrForwardReference, true},
		{"different kind", errs.New(errs.ErrKindBadMagic, "saw XYZ", nil), errs.ErrUnsupportedVersion, false},
		{"not an *errs.Error at all", fmt.Errorf("plain error"), errs.ErrBadMagic, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.wantIs, errors.Is(tc.err, tc.target))
		})
	}
}

func TestErrKind_String(t *testing.T) {
	tests := map[errs.ErrKind]string{
		errs.ErrKindBadMagic:           "BadMagic",
		errs.ErrKindUnsupportedVersion: "UnsupportedVersion",
		errs.ErrKindMalformedInput:     "MalformedInput",
		errs.ErrKindOutOfBoundsIndex:   "OutOfBoundsIndex",
		errs.ErrKindForwardReference:   "ForwardReference",
		errs.ErrKindUnsupportedLiteral: "UnsupportedLiteral",
		errs.ErrKind(99):               "Unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}

func TestNilError_ErrorStringDoesNotPanic(t *testing.T) {
	var e *errs.Error
	assert.Equal(t, "<nil>", e.Error())
}
