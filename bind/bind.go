// Package bind is the host-binding boundary of tinystore.
//
// A host application (a game engine, a scripting runtime) typically works
// with its own associative type rather than with Record values. Binding
// exposes the four operations such a host consumes -- create, find, update,
// destroy, all keyed by uuid -- and handles the conversion between the
// host-facing map form and the Record's opaque attributes string. The store
// core never interprets attribute contents.
package bind

import (
	"fmt"

	"github.com/hupe1980/tinystore"
	"github.com/hupe1980/tinystore/codec"
)

// Keys of the map form returned by Find.
const (
	KeyUUID       = "uuid"
	KeyModel      = "model"
	KeyAttributes = "attributes"
)

// Binding adapts a Record store to a map-based host surface.
type Binding struct {
	store *tinystore.Store[tinystore.Record]
	codec codec.Codec
}

// New creates a Binding over the given store.
func New(store *tinystore.Store[tinystore.Record], optFns ...func(o *Options)) *Binding {
	opts := Options{Codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Binding{
		store: store,
		codec: opts.Codec,
	}
}

// Options configures a Binding.
type Options struct {
	// Codec encodes attribute maps into the Record's attributes string.
	// Defaults to codec.Default.
	Codec codec.Codec
}

// Store returns the underlying record store.
func (b *Binding) Store() *tinystore.Store[tinystore.Record] {
	return b.store
}

// Create encodes attributes, stores a fresh record with the given model tag
// and returns its uuid.
func (b *Binding) Create(model string, attributes map[string]any) (string, error) {
	rec := tinystore.NewRecord(model)

	if len(attributes) > 0 {
		encoded, err := b.codec.Marshal(attributes)
		if err != nil {
			return "", fmt.Errorf("encode attributes: %w", err)
		}
		rec = rec.WithAttributes(string(encoded))
	}

	if err := b.store.Create(rec); err != nil {
		return "", err
	}

	return rec.UUID, nil
}

// Find returns the record with the given uuid in map form, with the
// attributes payload decoded back into a map.
func (b *Binding) Find(id string) (map[string]any, error) {
	rec, err := b.find(id)
	if err != nil {
		return nil, err
	}

	attributes := map[string]any{}
	if rec.Attributes != "" {
		if err := b.codec.Unmarshal([]byte(rec.Attributes), &attributes); err != nil {
			return nil, fmt.Errorf("decode attributes of %s: %w", id, err)
		}
	}

	return map[string]any{
		KeyUUID:       rec.UUID,
		KeyModel:      rec.Model,
		KeyAttributes: attributes,
	}, nil
}

// Update replaces the record with the given uuid, keeping the uuid but
// overwriting model and attributes.
func (b *Binding) Update(id, model string, attributes map[string]any) error {
	original, err := b.find(id)
	if err != nil {
		return err
	}

	replacement := tinystore.Record{UUID: id, Model: model}
	if len(attributes) > 0 {
		encoded, err := b.codec.Marshal(attributes)
		if err != nil {
			return fmt.Errorf("encode attributes: %w", err)
		}
		replacement.Attributes = string(encoded)
	}

	return b.store.Update(original, replacement)
}

// Destroy removes the record with the given uuid.
func (b *Binding) Destroy(id string) error {
	rec, err := b.find(id)
	if err != nil {
		return err
	}
	return b.store.Destroy(rec)
}

func (b *Binding) find(id string) (tinystore.Record, error) {
	return tinystore.Find(b.store, func(r tinystore.Record) string { return r.UUID }, id)
}
