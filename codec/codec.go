// Package codec centralizes store payload encoding.
//
// Tinystore snapshots are self-describing: the snapshot header records the
// codec name, and the matching codec is selected by name when the file is
// opened. Changing the default codec therefore never breaks existing files,
// but a file written with a codec unknown to this build cannot be decoded.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	// UnmarshalStrict decodes like Unmarshal but rejects input carrying
	// fields the target type does not declare. Snapshot loading uses this
	// so a store decoded as the wrong element type fails instead of
	// silently dropping every field.
	UnmarshalStrict(data []byte, v any) error

	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Snapshot files store the codec name in their header; this is how a store
// written with one codec is decoded by a process configured with another.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
