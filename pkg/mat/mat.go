// Package mat decodes MATLAB Level-5 binary containers ("MAT-files").
//
// A MAT-file is a 128-byte header followed by a sequence of self-framed data
// elements. Each element is a tag (type code and byte size) plus a payload
// padded to an 8-byte boundary. Matrix elements carry nested subelements
// (array flags, dimensions, name, numeric parts); compressed elements wrap a
// single zlib stream that inflates to another element.
//
// The package decodes numeric dense and sparse matrices. Character, cell,
// structure and object arrays are recognised and skipped. Files are never
// written.
package mat

// Format constants must never change.
const (
	// HeaderSize is the fixed size of the file preamble.
	HeaderSize = 128

	// Version is the only supported header version after byte-order correction.
	Version uint16 = 0x0100

	headerTextSize      = 116
	headerSubsystemSize = 8

	markerLittleEndian = "IM"
	markerBigEndian    = "MI"

	// DefaultMaxDepth bounds compressed-element nesting. Real files nest one
	// level deep.
	DefaultMaxDepth = 4

	tagAlign = 8
)
