package tinystore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord("Player")

	assert.Equal(t, "Player", rec.Model)
	assert.Empty(t, rec.Attributes)

	parsed, err := uuid.Parse(rec.UUID)
	require.NoError(t, err)
	assert.Equal(t, rec.UUID, parsed.String()) // canonical form
}

func TestNewRecordUniqueUUIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		rec := NewRecord("Player")
		_, dup := seen[rec.UUID]
		require.False(t, dup)
		seen[rec.UUID] = struct{}{}
	}
}

func TestRecordWithAttributes(t *testing.T) {
	rec := NewRecord("Player")
	updated := rec.WithAttributes(`{"name":"Joe Bloggs"}`)

	assert.Equal(t, rec.UUID, updated.UUID)
	assert.Equal(t, `{"name":"Joe Bloggs"}`, updated.Attributes)
	assert.Empty(t, rec.Attributes) // value receiver, original untouched
}
