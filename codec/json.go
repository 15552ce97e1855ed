package codec

import (
	"bytes"
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Notes:
//   - Element types must survive a JSON round trip exactly for the store's
//     equality contract to hold after load. Plain structs of strings, numbers
//     and booleans are safe; time.Time, funcs and channels are not.
//   - If you need custom encoding (e.g. msgpack), implement Codec and set it
//     with tinystore.WithCodec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// UnmarshalStrict decodes the JSON data into v, rejecting unknown fields.
func (JSON) UnmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// This affects newly-created snapshots only. Existing files are
// self-describing and are decoded with the codec named in their header.
var Default Codec = GoJSON{}
