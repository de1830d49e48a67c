package codec

import (
	"bufio"
	"io"

	"github.com/jonathanvdc/blt/internal/enckind"
	"github.com/jonathanvdc/blt/internal/literal"
	"github.com/jonathanvdc/blt/internal/symtab"
	"github.com/jonathanvdc/blt/internal/template"
	"github.com/jonathanvdc/blt/internal/varint"
	"github.com/jonathanvdc/blt/pkg/errs"
	"github.com/jonathanvdc/blt/pkg/node"
)

// DecodeOptions configures literal reconstruction and node construction
// for one ReadFile call.
type DecodeOptions struct {
	// Decoders reads the raw body for every literal kind except String,
	// Null, and Void, which the codec handles directly. Defaults to
	// literal.DefaultDecoders.
	Decoders literal.DecoderRegistry
	// Factory builds the host node values the decoder hands back.
	// Defaults to node.DefaultFactory.
	Factory node.Factory
}

// DefaultDecodeOptions covers every built-in encoding kind and produces
// plain *node.Node values.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Decoders: literal.DefaultDecoders(),
		Factory:  node.DefaultFactory{},
	}
}

// ReadFile parses a BLT stream into its top-level forest (spec §4.8).
// identifier is an opaque label with no on-disk representation, passed
// through to every node the factory builds. Decoding is a single
// left-to-right pass: every reference is resolved against arrays already
// populated, so no seeking or back-patching is needed.
func ReadFile(r io.Reader, identifier string, opts DecodeOptions) ([]*node.Node, error) {
	br := bufio.NewReader(r)

	if err := readMagic(br); err != nil {
		return nil, err
	}
	if err := readVersion(br); err != nil {
		return nil, err
	}

	symbols, err := readSymbols(br)
	if err != nil {
		return nil, err
	}
	symReader := symtab.NewReader(symbols)

	templates, err := readTemplates(br)
	if err != nil {
		return nil, err
	}
	tplReader := template.NewReader(templates)

	table, err := readNodeTable(br, tplReader, symReader, opts, identifier)
	if err != nil {
		return nil, err
	}

	return readTopLevel(br, table)
}

func readMagic(r *bufio.Reader) error {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return errs.New(errs.ErrKindBadMagic, "stream shorter than the magic header", err)
	}
	if buf != Magic {
		return errs.New(errs.ErrKindBadMagic, "magic bytes are not \"BLT\"", nil)
	}
	return nil
}

func readVersion(r *bufio.Reader) error {
	v, err := varint.ReadUint32(r)
	if err != nil {
		return err
	}
	major, minor := splitVersion(v)
	if major > CurrentMajor || (major == CurrentMajor && minor > CurrentMinor) {
		return errs.New(errs.ErrKindUnsupportedVersion, "file version exceeds what this library decodes", nil)
	}
	return nil
}

func readSymbols(r *bufio.Reader) ([]string, error) {
	n, err := varint.ReadUvarintLen(r)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, n)
	for i := range symbols {
		s, err := varint.ReadString(r)
		if err != nil {
			return nil, err
		}
		symbols[i] = s
	}
	return symbols, nil
}

func readTemplates(r *bufio.Reader) ([]template.Template, error) {
	n, err := varint.ReadUvarintLen(r)
	if err != nil {
		return nil, err
	}
	templates := make([]template.Template, n)
	for i := range templates {
		t, err := readTemplate(r)
		if err != nil {
			return nil, err
		}
		templates[i] = t
	}
	return templates, nil
}

func readTemplate(r *bufio.Reader) (template.Template, error) {
	tag, err := varint.ReadTag(r)
	if err != nil {
		return template.Template{}, err
	}
	switch tag {
	case 0:
		arity, err := varint.ReadUvarintLen(r)
		if err != nil {
			return template.Template{}, err
		}
		return template.NewCall(arity), nil
	case 1:
		sym, err := varint.ReadUvarintLen(r)
		if err != nil {
			return template.Template{}, err
		}
		arity, err := varint.ReadUvarintLen(r)
		if err != nil {
			return template.Template{}, err
		}
		return template.NewCallID(sym, arity), nil
	case 2:
		cnt, err := varint.ReadUvarintLen(r)
		if err != nil {
			return template.Template{}, err
		}
		return template.NewAttribute(cnt), nil
	default:
		return template.Template{}, errUnknownTemplateTag
	}
}

func readNodeTable(r *bufio.Reader, templates *template.Reader, symbols *symtab.Reader, opts DecodeOptions, identifier string) ([]*node.Node, error) {
	runCount, err := varint.ReadUvarintLen(r)
	if err != nil {
		return nil, err
	}
	var table []*node.Node
	for i := 0; i < runCount; i++ {
		if err := readRun(r, &table, templates, symbols, opts, identifier); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func readRun(r *bufio.Reader, table *[]*node.Node, templates *template.Reader, symbols *symtab.Reader, opts DecodeOptions, identifier string) error {
	count, err := varint.ReadUvarintLen(r)
	if err != nil {
		return err
	}
	kindTag, err := varint.ReadTag(r)
	if err != nil {
		return err
	}
	kind := enckind.Kind(kindTag)

	switch kind {
	case enckind.TemplatedNode:
		tplIdx, err := varint.ReadUvarintLen(r)
		if err != nil {
			return err
		}
		tpl, err := templates.Get(tplIdx)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			n, err := readTemplatedNode(r, tpl, symbols, opts, identifier, *table)
			if err != nil {
				return err
			}
			*table = append(*table, n)
		}

	case enckind.VariablyTemplatedNode:
		for i := 0; i < count; i++ {
			tplIdx, err := varint.ReadUvarintLen(r)
			if err != nil {
				return err
			}
			tpl, err := templates.Get(tplIdx)
			if err != nil {
				return err
			}
			n, err := readTemplatedNode(r, tpl, symbols, opts, identifier, *table)
			if err != nil {
				return err
			}
			*table = append(*table, n)
		}

	case enckind.IdNode:
		for i := 0; i < count; i++ {
			symIdx, err := varint.ReadUvarintLen(r)
			if err != nil {
				return err
			}
			name, err := symbols.Get(symIdx)
			if err != nil {
				return err
			}
			*table = append(*table, opts.Factory.Identifier(identifier, name))
		}

	case enckind.String:
		for i := 0; i < count; i++ {
			symIdx, err := varint.ReadUvarintLen(r)
			if err != nil {
				return err
			}
			s, err := symbols.Get(symIdx)
			if err != nil {
				return err
			}
			*table = append(*table, opts.Factory.Literal(identifier, s))
		}

	case enckind.Null:
		for i := 0; i < count; i++ {
			*table = append(*table, opts.Factory.Literal(identifier, nil))
		}

	case enckind.Void:
		for i := 0; i < count; i++ {
			*table = append(*table, opts.Factory.Literal(identifier, node.Void{}))
		}

	default:
		dec, ok := opts.Decoders[kind]
		if !ok {
			return errUnknownRunKind
		}
		for i := 0; i < count; i++ {
			v, err := dec(r)
			if err != nil {
				return err
			}
			*table = append(*table, opts.Factory.Literal(identifier, v))
		}
	}
	return nil
}

// readTemplatedNode reads one template-instantiated node's slot
// references and builds it via the factory. table is the node table as
// populated so far; a slot reference at or beyond its length fails with
// ForwardReference (spec §4.8).
func readTemplatedNode(r *bufio.Reader, tpl template.Template, symbols *symtab.Reader, opts DecodeOptions, identifier string, table []*node.Node) (*node.Node, error) {
	slots := make([]*node.Node, tpl.SlotCount())
	for i := range slots {
		ref, err := varint.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		if ref >= uint64(len(table)) {
			return nil, errs.New(errs.ErrKindForwardReference, "node-table reference points at a not-yet-populated entry", nil)
		}
		slots[i] = table[ref]
	}

	switch tpl.Variant {
	case template.VariantCall:
		return opts.Factory.Call(identifier, slots[0], slots[1:]), nil
	case template.VariantCallID:
		name, err := symbols.Get(tpl.SymbolID)
		if err != nil {
			return nil, err
		}
		target := opts.Factory.Identifier(identifier, name)
		return opts.Factory.Call(identifier, target, slots), nil
	case template.VariantAttribute:
		return opts.Factory.WithAttrs(identifier, slots[0], slots[1:]), nil
	default:
		return nil, errUnknownTemplateTag
	}
}

func readTopLevel(r *bufio.Reader, table []*node.Node) ([]*node.Node, error) {
	n, err := varint.ReadUvarintLen(r)
	if err != nil {
		return nil, err
	}
	tops := make([]*node.Node, n)
	for i := range tops {
		ref, err := varint.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		if ref >= uint64(len(table)) {
			return nil, errs.New(errs.ErrKindForwardReference, "top-level reference points at a not-yet-populated entry", nil)
		}
		tops[i] = table[ref]
	}
	return tops, nil
}
