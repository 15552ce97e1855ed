package tinystore

import "github.com/google/uuid"

// Record is a ready-made element type resembling a conventional database
// row. It is provided for convenience; any comparable struct whose fields
// survive a codec round trip can be stored instead.
type Record struct {
	// UUID is a globally unique identifier assigned at construction.
	UUID string `json:"uuid"`

	// Model is a caller-assigned category tag (free-form).
	Model string `json:"model"`

	// Attributes is a caller-assigned payload, typically an encoded
	// key/value map. The store treats it as an opaque string.
	Attributes string `json:"attributes"`
}

// NewRecord creates a Record with a fresh random UUID, the given model tag
// and empty attributes.
func NewRecord(model string) Record {
	return Record{
		UUID:  uuid.NewString(),
		Model: model,
	}
}

// WithAttributes returns a copy of the record with the attributes payload
// replaced. Records are stored by value, so mutate before Create and use
// Update afterwards.
func (r Record) WithAttributes(attributes string) Record {
	r.Attributes = attributes
	return r
}
