// Package literal maps a literal node's Go runtime type to its on-disk
// encoding kind, and carries the read/write bodies for every literal kind
// except String and Null. Those two, and the non-literal run kinds
// (TemplatedNode, VariablyTemplatedNode, IdNode), are handled by
// internal/codec directly because they need the symbol or template table
// or carry no bytes.
//
// This mirrors pkg/hive's registry-of-options pattern (a map the caller
// can extend with custom registrations before encoding/decoding) but
// keyed by reflect.Type/enckind.Kind instead of hive value types.
package literal

import (
	"bufio"
	"math/big"
	"reflect"

	"github.com/jonathanvdc/blt/internal/enckind"
	"github.com/jonathanvdc/blt/internal/varint"
	"github.com/jonathanvdc/blt/pkg/node"
)

// Encoder writes value's body (no kind tag, no length prefix beyond what
// the kind itself requires) to w.
type Encoder func(w *bufio.Writer, value any) error

// Decoder reads one value's body from r.
type Decoder func(r *bufio.Reader) (any, error)

// KindRegistry maps a literal's Go runtime type to the on-disk encoding
// kind the encoder must classify that literal as (spec §4.6).
type KindRegistry map[reflect.Type]enckind.Kind

// EncoderRegistry maps an encoding kind to the function that writes a
// literal value of that kind.
type EncoderRegistry map[enckind.Kind]Encoder

// DecoderRegistry maps an encoding kind to the function that reads a
// literal value of that kind.
type DecoderRegistry map[enckind.Kind]Decoder

// KindOf looks up value's registered encoding kind. ok is false if value's
// runtime type carries no registration, in which case the caller must
// raise UnsupportedLiteral (spec §4.6).
func (k KindRegistry) KindOf(value any) (enckind.Kind, bool) {
	kind, ok := k[reflect.TypeOf(value)]
	return kind, ok
}

// DefaultKindRegistry returns the registrations that cover every
// built-in encoding kind in the tag table (spec §6), keyed by the Go
// type a caller's node factory is expected to produce for that kind.
func DefaultKindRegistry() KindRegistry {
	return KindRegistry{
		reflect.TypeOf(int8(0)):        enckind.Int8,
		reflect.TypeOf(int16(0)):       enckind.Int16,
		reflect.TypeOf(int32(0)):       enckind.Int32,
		reflect.TypeOf(int64(0)):       enckind.Int64,
		reflect.TypeOf(uint8(0)):       enckind.UInt8,
		reflect.TypeOf(uint16(0)):      enckind.UInt16,
		reflect.TypeOf(uint32(0)):      enckind.UInt32,
		reflect.TypeOf(uint64(0)):      enckind.UInt64,
		reflect.TypeOf(float32(0)):     enckind.Float32,
		reflect.TypeOf(float64(0)):     enckind.Float64,
		reflect.TypeOf(node.Char(0)):   enckind.Char,
		reflect.TypeOf(false):          enckind.Boolean,
		reflect.TypeOf(node.Void{}):    enckind.Void,
		reflect.TypeOf(node.Decimal{}): enckind.Decimal,
		reflect.TypeOf((*big.Int)(nil)): enckind.BigInteger,
		reflect.TypeOf(""):             enckind.String,
	}
}

// DefaultEncoders returns the write-body functions for every kind except
// String (symbol-table dependent, handled by internal/codec) and Null
// (zero bytes, needs no function at all).
func DefaultEncoders() EncoderRegistry {
	return EncoderRegistry{
		enckind.Int8:    func(w *bufio.Writer, v any) error { return varint.WriteInt8(w, v.(int8)) },
		enckind.Int16:   func(w *bufio.Writer, v any) error { return varint.WriteInt16(w, v.(int16)) },
		enckind.Int32:   func(w *bufio.Writer, v any) error { return varint.WriteInt32(w, v.(int32)) },
		enckind.Int64:   func(w *bufio.Writer, v any) error { return varint.WriteInt64(w, v.(int64)) },
		enckind.UInt8:   func(w *bufio.Writer, v any) error { return varint.WriteUint8(w, v.(uint8)) },
		enckind.UInt16:  func(w *bufio.Writer, v any) error { return varint.WriteUint16(w, v.(uint16)) },
		enckind.UInt32:  func(w *bufio.Writer, v any) error { return varint.WriteUint32(w, v.(uint32)) },
		enckind.UInt64:  func(w *bufio.Writer, v any) error { return varint.WriteUint64(w, v.(uint64)) },
		enckind.Float32: func(w *bufio.Writer, v any) error { return varint.WriteFloat32(w, v.(float32)) },
		enckind.Float64: func(w *bufio.Writer, v any) error { return varint.WriteFloat64(w, v.(float64)) },
		enckind.Char:    func(w *bufio.Writer, v any) error { return varint.WriteChar(w, uint16(v.(node.Char))) },
		enckind.Boolean: func(w *bufio.Writer, v any) error { return varint.WriteBool(w, v.(bool)) },
		enckind.Void:    func(w *bufio.Writer, v any) error { return nil },
		enckind.Decimal: func(w *bufio.Writer, v any) error {
			d := v.(node.Decimal)
			return varint.WriteDecimal(w, d.Lo, d.Mid, d.Hi, d.Flags)
		},
		enckind.BigInteger: func(w *bufio.Writer, v any) error {
			return varint.WriteBigInt(w, bigIntBytes(v.(*big.Int)))
		},
	}
}

// DefaultDecoders returns the read-body functions matching DefaultEncoders.
func DefaultDecoders() DecoderRegistry {
	return DecoderRegistry{
		enckind.Int8:    func(r *bufio.Reader) (any, error) { return varint.ReadInt8(r) },
		enckind.Int16:   func(r *bufio.Reader) (any, error) { return varint.ReadInt16(r) },
		enckind.Int32:   func(r *bufio.Reader) (any, error) { return varint.ReadInt32(r) },
		enckind.Int64:   func(r *bufio.Reader) (any, error) { return varint.ReadInt64(r) },
		enckind.UInt8:   func(r *bufio.Reader) (any, error) { return varint.ReadUint8(r) },
		enckind.UInt16:  func(r *bufio.Reader) (any, error) { return varint.ReadUint16(r) },
		enckind.UInt32:  func(r *bufio.Reader) (any, error) { return varint.ReadUint32(r) },
		enckind.UInt64:  func(r *bufio.Reader) (any, error) { return varint.ReadUint64(r) },
		enckind.Float32: func(r *bufio.Reader) (any, error) { return varint.ReadFloat32(r) },
		enckind.Float64: func(r *bufio.Reader) (any, error) { return varint.ReadFloat64(r) },
		enckind.Char: func(r *bufio.Reader) (any, error) {
			c, err := varint.ReadChar(r)
			return node.Char(c), err
		},
		enckind.Boolean: func(r *bufio.Reader) (any, error) { return varint.ReadBool(r) },
		enckind.Void:    func(r *bufio.Reader) (any, error) { return node.Void{}, nil },
		enckind.Decimal: func(r *bufio.Reader) (any, error) {
			lo, mid, hi, flags, err := varint.ReadDecimal(r)
			return node.Decimal{Lo: lo, Mid: mid, Hi: hi, Flags: flags}, err
		},
		enckind.BigInteger: func(r *bufio.Reader) (any, error) {
			b, err := varint.ReadBigInt(r)
			if err != nil {
				return nil, err
			}
			return bigIntFromTwosComplement(b), nil
		},
	}
}

// bigIntBytes renders v as the wire format's signed little-endian
// two's-complement byte sequence (spec §4.1). big.Int's own Bytes/SetBytes
// are big-endian magnitude, so the two's-complement sequence is built
// big-endian first and then byte-reversed into little-endian order.
func bigIntBytes(v *big.Int) []byte {
	var b []byte
	if v.Sign() == 0 {
		b = []byte{0}
	} else if v.Sign() > 0 {
		b = v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
	} else {
		mag := new(big.Int).Neg(v)
		nBytes := len(mag.Bytes())
		two := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
		comp := new(big.Int).Add(two, v)
		b = comp.Bytes()
		for len(b) < nBytes {
			b = append([]byte{0}, b...)
		}
		if b[0]&0x80 == 0 {
			b = append([]byte{0xff}, b...)
		}
	}
	reverse(b)
	return b
}

// bigIntFromTwosComplement is bigIntBytes's inverse.
func bigIntFromTwosComplement(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	be := make([]byte, len(b))
	copy(be, b)
	reverse(be)
	v := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		two := new(big.Int).Lsh(big.NewInt(1), uint(len(be)*8))
		v.Sub(v, two)
	}
	return v
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
