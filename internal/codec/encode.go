package codec

import (
	"bufio"
	"io"

	"github.com/jonathanvdc/blt/internal/enckind"
	"github.com/jonathanvdc/blt/internal/literal"
	"github.com/jonathanvdc/blt/internal/nodetable"
	"github.com/jonathanvdc/blt/internal/template"
	"github.com/jonathanvdc/blt/internal/varint"
	"github.com/jonathanvdc/blt/pkg/errs"
	"github.com/jonathanvdc/blt/pkg/node"
)

// EncodeOptions configures literal classification and serialization for
// one WriteFile call.
type EncodeOptions struct {
	// Kinds classifies a literal's Go runtime type into an on-disk
	// encoding kind (spec §4.6). Defaults to literal.DefaultKindRegistry.
	Kinds literal.KindRegistry
	// Encoders writes the raw body for every literal kind except String,
	// Null, and Void, which the codec handles directly. Defaults to
	// literal.DefaultEncoders.
	Encoders literal.EncoderRegistry
	// MaxDepth caps how deep the node-table builder's explicit work stack
	// (spec §9) may grow before WriteFile gives up on the forest as
	// pathologically nested. 0 means unlimited.
	MaxDepth int
}

// DefaultEncodeOptions covers every built-in encoding kind and imposes no
// depth limit.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Kinds:    literal.DefaultKindRegistry(),
		Encoders: literal.DefaultEncoders(),
	}
}

// WriteFile serializes forest to w in BLT's byte-exact layout (spec §6).
// No byte is committed before the node table has been fully built, so an
// UnsupportedLiteral failure is detected before emission begins (spec
// §4.10) — except for the three header bytes and the version word, which
// carry no dependency on the forest at all.
func WriteFile(w io.Writer, forest []*node.Node, opts EncodeOptions) error {
	builder := nodetable.New(opts.Kinds, opts.MaxDepth)
	tops, err := builder.Build(forest)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	if _, err := bw.Write(Magic[:]); err != nil {
		return err
	}
	if err := varint.WriteUint32(bw, versionInt32(CurrentMajor, CurrentMinor)); err != nil {
		return err
	}

	if err := writeSymbols(bw, builder.Symbols().Symbols()); err != nil {
		return err
	}
	if err := writeTemplates(bw, builder.Templates().Templates()); err != nil {
		return err
	}
	if err := writeRuns(bw, builder.Runs(), builder.Entries(), opts.Encoders); err != nil {
		return err
	}
	if err := writeTopLevel(bw, tops); err != nil {
		return err
	}

	return bw.Flush()
}

func writeSymbols(w *bufio.Writer, symbols []string) error {
	if err := varint.WriteUvarintLen(w, len(symbols)); err != nil {
		return err
	}
	for _, s := range symbols {
		if err := varint.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeTemplates(w *bufio.Writer, templates []template.Template) error {
	if err := varint.WriteUvarintLen(w, len(templates)); err != nil {
		return err
	}
	for _, t := range templates {
		if err := writeTemplate(w, t); err != nil {
			return err
		}
	}
	return nil
}

func writeTemplate(w *bufio.Writer, t template.Template) error {
	switch t.Variant {
	case template.VariantCall:
		if err := w.WriteByte(0); err != nil {
			return err
		}
		return varint.WriteUvarintLen(w, t.Arity)
	case template.VariantCallID:
		if err := w.WriteByte(1); err != nil {
			return err
		}
		if err := varint.WriteUvarintLen(w, t.SymbolID); err != nil {
			return err
		}
		return varint.WriteUvarintLen(w, t.Arity)
	case template.VariantAttribute:
		if err := w.WriteByte(2); err != nil {
			return err
		}
		return varint.WriteUvarintLen(w, t.AttrCnt)
	default:
		return errUnknownTemplateTag
	}
}

func writeRuns(w *bufio.Writer, runs []nodetable.Run, entries []nodetable.Entry, encoders literal.EncoderRegistry) error {
	if err := varint.WriteUvarintLen(w, len(runs)); err != nil {
		return err
	}
	for _, run := range runs {
		if err := writeRun(w, run, entries, encoders); err != nil {
			return err
		}
	}
	return nil
}

func writeRun(w *bufio.Writer, run nodetable.Run, entries []nodetable.Entry, encoders literal.EncoderRegistry) error {
	if err := varint.WriteUvarintLen(w, len(run.Indices)); err != nil {
		return err
	}
	if err := w.WriteByte(byte(run.Kind)); err != nil {
		return err
	}

	switch run.Kind {
	case enckind.TemplatedNode:
		if err := varint.WriteUvarintLen(w, run.TemplateIndex); err != nil {
			return err
		}
		for _, idx := range run.Indices {
			for _, slot := range entries[idx].Slots {
				if err := varint.WriteUvarint(w, uint64(slot)); err != nil {
					return err
				}
			}
		}
	case enckind.IdNode, enckind.String:
		for _, idx := range run.Indices {
			if err := varint.WriteUvarintLen(w, entries[idx].SymbolIndex); err != nil {
				return err
			}
		}
	case enckind.Null, enckind.Void:
		// Zero bytes per entry: self-identifying from the run's kind tag.
	default:
		enc, ok := encoders[run.Kind]
		if !ok {
			return errs.New(errs.ErrKindUnsupportedLiteral, "no encoder registered for run kind "+run.Kind.String(), nil)
		}
		for _, idx := range run.Indices {
			if err := enc(w, entries[idx].Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTopLevel(w *bufio.Writer, tops []int) error {
	if err := varint.WriteUvarintLen(w, len(tops)); err != nil {
		return err
	}
	for _, idx := range tops {
		if err := varint.WriteUvarint(w, uint64(idx)); err != nil {
			return err
		}
	}
	return nil
}
