// Package codec implements BLT's byte-exact file layout (spec §6): the
// magic/version header, symbol and template tables, the run-clustered
// node table, and the top-level reference list. internal/nodetable
// builds the tables; this package only serializes and deserializes them.
//
// The state-machine shape — START → magic → version → symtab → tmpltab →
// nodetab → toplevel → DONE (spec §4.9) — mirrors hive/builder/encode.go's
// own fixed emission order (header, then hbins, then cells), generalized
// from a registry hive's block layout to BLT's table layout.
package codec

import "github.com/jonathanvdc/blt/pkg/errs"

// Magic is the three-byte signature every BLT stream begins with.
var Magic = [3]byte{'B', 'L', 'T'}

// CurrentMajor and CurrentMinor are the version this library writes and
// the newest version it accepts on read (spec §6: "Current version:
// major 1, minor 0").
const (
	CurrentMajor uint16 = 1
	CurrentMinor uint16 = 0
)

func versionInt32(major, minor uint16) uint32 {
	return uint32(major)<<16 | uint32(minor)
}

func splitVersion(v uint32) (major, minor uint16) {
	return uint16(v >> 16), uint16(v)
}

var errUnknownTemplateTag = errs.New(errs.ErrKindMalformedInput, "unknown template variant tag", nil)
var errUnknownRunKind = errs.New(errs.ErrKindMalformedInput, "unknown run encoding kind tag", nil)
