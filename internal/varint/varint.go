// Package varint implements the primitive on-disk codec BLT builds
// everything else on top of: ULEB128 varints, fixed-width little-endian
// primitives, length-prefixed byte arrays and UTF-8 strings, and
// arbitrary-precision integers.
//
// Every read function here fails with an *errs.Error of kind
// ErrKindMalformedInput on premature end-of-stream or an overlong
// varint, matching the teacher's "bounds-checked, no panics" discipline
// in internal/buf — generalized from offset-into-a-slice bounds checks
// to io.Reader truncation checks, since this codec streams rather than
// mmaps.
package varint

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/jonathanvdc/blt/pkg/errs"
)

// maxVarintBytes is the most ULEB128 continuation bytes a well-formed
// uint64 varint can occupy (ceil(64/7)); a 10th continuation byte
// without a terminator is malformed input (spec §4.1).
const maxVarintBytes = 10

// WriteUvarint writes v to w as an unsigned LEB128 varint: 7 bits at a
// time, low group first, continuation bit set on every byte but the last.
func WriteUvarint(w *bufio.Writer, v uint64) error {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
		if v == 0 {
			return nil
		}
	}
}

// ReadUvarint reads an unsigned LEB128 varint from r.
func ReadUvarint(r *bufio.Reader) (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, wrapEOF(err, "truncated varint")
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errs.New(errs.ErrKindMalformedInput, "varint has a 10th continuation byte without a terminator", nil)
}

// WriteUvarintLen writes a length prefix (an unsigned varint of n).
func WriteUvarintLen(w *bufio.Writer, n int) error {
	return WriteUvarint(w, uint64(n))
}

// ReadUvarintLen reads a length prefix, failing if it would overflow int.
func ReadUvarintLen(r *bufio.Reader) (int, error) {
	v, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt {
		return 0, errs.New(errs.ErrKindMalformedInput, "length prefix overflows int", nil)
	}
	return int(v), nil
}

// WriteBytes writes a ULEB128(len) prefix followed by raw bytes.
func WriteBytes(w *bufio.Writer, b []byte) error {
	if err := WriteUvarintLen(w, len(b)); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadBytes reads a ULEB128(len)-prefixed byte sequence.
func ReadBytes(r *bufio.Reader) ([]byte, error) {
	n, err := ReadUvarintLen(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapEOF(err, "truncated byte array")
	}
	return buf, nil
}

// WriteString writes s as a ULEB128(utf8_len)-prefixed UTF-8 byte sequence.
func WriteString(w *bufio.Writer, s string) error {
	if err := WriteUvarintLen(w, len(s)); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

// ReadString reads a ULEB128(utf8_len)-prefixed UTF-8 string.
func ReadString(r *bufio.Reader) (string, error) {
	b, err := ReadBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteBigInt writes a two's-complement little-endian arbitrary-precision
// integer as ULEB128(byte_count) followed by the byte sequence.
func WriteBigInt(w *bufio.Writer, b []byte) error {
	return WriteBytes(w, b)
}

// ReadBigInt reads an arbitrary-precision integer in the same layout WriteBigInt produces.
func ReadBigInt(r *bufio.Reader) ([]byte, error) {
	return ReadBytes(r)
}

// Fixed-width primitives. These mirror internal/format's little-endian
// helpers but operate on a stream instead of an offset into a slice,
// since BLT decoding is forward-only (no seeking, no backing buffer).

// ReadTag reads a single untyped tag byte (a template variant or run
// encoding-kind discriminator), failing with MalformedInput on premature
// end-of-stream.
func ReadTag(r *bufio.Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, wrapEOF(err, "truncated tag byte")
	}
	return b, nil
}

func WriteBool(w *bufio.Writer, v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

func ReadBool(r *bufio.Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, wrapEOF(err, "truncated bool")
	}
	return b != 0, nil
}

// WriteChar writes a single UTF-16 code unit as 2 little-endian bytes,
// preserved exactly — including unpaired surrogate halves — since this
// is a raw on-disk code unit, not validated text.
func WriteChar(w *bufio.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadChar(r *bufio.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err, "truncated char")
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func WriteInt8(w *bufio.Writer, v int8) error { return w.WriteByte(byte(v)) }

func ReadInt8(r *bufio.Reader) (int8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, wrapEOF(err, "truncated int8")
	}
	return int8(b), nil
}

func WriteUint8(w *bufio.Writer, v uint8) error { return w.WriteByte(v) }

func ReadUint8(r *bufio.Reader) (uint8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, wrapEOF(err, "truncated uint8")
	}
	return b, nil
}

func WriteInt16(w *bufio.Writer, v int16) error { return writeFixed16(w, uint16(v)) }

func ReadInt16(r *bufio.Reader) (int16, error) {
	v, err := readFixed16(r, "int16")
	return int16(v), err
}

func WriteUint16(w *bufio.Writer, v uint16) error { return writeFixed16(w, v) }

func ReadUint16(r *bufio.Reader) (uint16, error) { return readFixed16(r, "uint16") }

func WriteInt32(w *bufio.Writer, v int32) error { return writeFixed32(w, uint32(v)) }

func ReadInt32(r *bufio.Reader) (int32, error) {
	v, err := readFixed32(r, "int32")
	return int32(v), err
}

func WriteUint32(w *bufio.Writer, v uint32) error { return writeFixed32(w, v) }

func ReadUint32(r *bufio.Reader) (uint32, error) { return readFixed32(r, "uint32") }

func WriteInt64(w *bufio.Writer, v int64) error { return writeFixed64(w, uint64(v)) }

func ReadInt64(r *bufio.Reader) (int64, error) {
	v, err := readFixed64(r, "int64")
	return int64(v), err
}

func WriteUint64(w *bufio.Writer, v uint64) error { return writeFixed64(w, v) }

func ReadUint64(r *bufio.Reader) (uint64, error) { return readFixed64(r, "uint64") }

func WriteFloat32(w *bufio.Writer, v float32) error {
	return writeFixed32(w, math.Float32bits(v))
}

func ReadFloat32(r *bufio.Reader) (float32, error) {
	v, err := readFixed32(r, "float32")
	return math.Float32frombits(v), err
}

func WriteFloat64(w *bufio.Writer, v float64) error {
	return writeFixed64(w, math.Float64bits(v))
}

func ReadFloat64(r *bufio.Reader) (float64, error) {
	v, err := readFixed64(r, "float64")
	return math.Float64frombits(v), err
}

// WriteDecimal writes a 128-bit fixed-point decimal as four little-endian
// 32-bit lanes: low, mid, high mantissa words, then a flags word
// (sign/scale), matching the canonical decimal layout this format
// preserves byte-for-byte.
func WriteDecimal(w *bufio.Writer, lo, mid, hi, flags uint32) error {
	for _, lane := range [4]uint32{lo, mid, hi, flags} {
		if err := writeFixed32(w, lane); err != nil {
			return err
		}
	}
	return nil
}

func ReadDecimal(r *bufio.Reader) (lo, mid, hi, flags uint32, err error) {
	lanes := [4]uint32{}
	for i := range lanes {
		lanes[i], err = readFixed32(r, "decimal lane")
		if err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return lanes[0], lanes[1], lanes[2], lanes[3], nil
}

func writeFixed16(w *bufio.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readFixed16(r *bufio.Reader, what string) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err, "truncated "+what)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func writeFixed32(w *bufio.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readFixed32(r *bufio.Reader, what string) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err, "truncated "+what)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeFixed64(w *bufio.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readFixed64(r *bufio.Reader, what string) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err, "truncated "+what)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func wrapEOF(err error, msg string) error {
	return errs.New(errs.ErrKindMalformedInput, msg, err)
}
