package blt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathanvdc/blt/internal/codec"
	"github.com/jonathanvdc/blt/pkg/errs"
	"github.com/jonathanvdc/blt/pkg/node"
)

// Re-exported for convenience, so callers need only import this package
// for the common case of branching on failure kind.
type (
	// Error is a typed BLT failure with an optional underlying cause.
	Error = errs.Error
	// ErrKind classifies an Error into one of the categories the format can produce.
	ErrKind = errs.ErrKind
)

var (
	ErrBadMagic           = errs.ErrBadMagic
	ErrUnsupportedVersion = errs.ErrUnsupportedVersion
	ErrMalformedInput     = errs.ErrMalformedInput
	ErrOutOfBoundsIndex   = errs.ErrOutOfBoundsIndex
	ErrForwardReference   = errs.ErrForwardReference
	ErrUnsupportedLiteral = errs.ErrUnsupportedLiteral
)

// WriteFile serializes forest to w in BLT's binary layout. A nil opts
// uses DefaultOptions().
//
// Example:
//
//	err := blt.WriteFile(w, forest, nil)
func WriteFile(w io.Writer, forest []*node.Node, opts *Options) error {
	o := resolve(opts)
	return codec.WriteFile(w, forest, codec.EncodeOptions{
		Kinds:    o.Kinds,
		Encoders: o.Encoders,
		MaxDepth: o.MaxDepth,
	})
}

// ReadFile parses a BLT stream from r into its top-level forest. A nil
// opts uses DefaultOptions(). identifier is an opaque label with no
// on-disk representation, passed through to every node the factory
// builds; pass "" if the caller's Factory doesn't use it.
func ReadFile(r io.Reader, identifier string, opts *Options) ([]*node.Node, error) {
	o := resolve(opts)
	return codec.ReadFile(r, identifier, codec.DecodeOptions{
		Decoders: o.Decoders,
		Factory:  o.Factory,
	})
}

// WriteFilePath serializes forest to a temp file in path's directory,
// fsyncs it, and renames it over path, so a crash or encode failure
// never leaves a truncated or partially-written file at path. A nil
// opts uses DefaultOptions().
func WriteFilePath(path string, forest []*node.Node, opts *Options) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".blt-tmp-*")
	if err != nil {
		return fmt.Errorf("blt: failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := WriteFile(tmp, forest, opts); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("blt: failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("blt: failed to close %s: %w", tmpPath, err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("blt: failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

// ReadFilePath parses the BLT file at path. identifier is an opaque
// label with no on-disk representation; a nil opts uses
// DefaultOptions().
func ReadFilePath(path string, identifier string, opts *Options) ([]*node.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blt: failed to read %s: %w", path, err)
	}
	return ReadFile(bytes.NewReader(data), identifier, opts)
}

// Marshal serializes forest to a freshly allocated byte slice. A nil
// opts uses DefaultOptions().
func Marshal(forest []*node.Node, opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFile(&buf, forest, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses data into its top-level forest. identifier is an
// opaque label with no on-disk representation; a nil opts uses
// DefaultOptions().
func Unmarshal(data []byte, identifier string, opts *Options) ([]*node.Node, error) {
	return ReadFile(bytes.NewReader(data), identifier, opts)
}
