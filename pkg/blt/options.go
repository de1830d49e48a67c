package blt

import (
	"github.com/jonathanvdc/blt/internal/literal"
	"github.com/jonathanvdc/blt/pkg/node"
)

// Options controls literal classification and node construction for one
// WriteFile or ReadFile call. A nil Options, or a zero-value field
// within one, falls back to the matching Default.
type Options struct {
	// Kinds classifies a literal's Go runtime type into an on-disk
	// encoding kind during encoding. Defaults to DefaultKindRegistry().
	Kinds literal.KindRegistry

	// Encoders writes the raw body for every registered literal kind
	// except String, Null, and Void, which the codec handles directly.
	// Defaults to DefaultEncoders().
	Encoders literal.EncoderRegistry

	// Decoders reads the raw body matching Encoders. Defaults to
	// DefaultDecoders().
	Decoders literal.DecoderRegistry

	// Factory builds the host node values ReadFile hands back. Defaults
	// to node.DefaultFactory{}, which produces plain *node.Node values.
	Factory node.Factory

	// MaxDepth caps how deep WriteFile's node-table builder is allowed to
	// nest before it rejects the forest as pathologically deep, the same
	// way a defensive host caps recursion over an untrusted tree. 0 (the
	// zero value) means unlimited, matching DefaultOptions.
	MaxDepth int
}

// DefaultOptions covers every built-in encoding kind and produces plain
// *node.Node values.
func DefaultOptions() Options {
	return Options{
		Kinds:    literal.DefaultKindRegistry(),
		Encoders: literal.DefaultEncoders(),
		Decoders: literal.DefaultDecoders(),
		Factory:  node.DefaultFactory{},
	}
}

// resolve fills any zero-value field of opts (or the whole struct, if
// opts is nil) from DefaultOptions.
func resolve(opts *Options) Options {
	def := DefaultOptions()
	if opts == nil {
		return def
	}
	out := *opts
	if out.Kinds == nil {
		out.Kinds = def.Kinds
	}
	if out.Encoders == nil {
		out.Encoders = def.Encoders
	}
	if out.Decoders == nil {
		out.Decoders = def.Decoders
	}
	if out.Factory == nil {
		out.Factory = def.Factory
	}
	return out
}
