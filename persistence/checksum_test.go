package persistence

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumAgreement(t *testing.T) {
	// One-shot, streamed-write, and streamed-read checksums must all agree
	// for the same bytes.
	data := []byte("label=demo items=[a b c]")
	want := ComputeChecksum(data)

	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	_, err := cw.Write(data[:7])
	require.NoError(t, err)
	_, err = cw.Write(data[7:])
	require.NoError(t, err)
	assert.Equal(t, want, cw.Sum())
	assert.Equal(t, data, buf.Bytes())

	cr := NewChecksumReader(bytes.NewReader(data))
	_, err = io.Copy(io.Discard, cr)
	require.NoError(t, err)
	assert.Equal(t, want, cr.Sum())
}

func TestChecksumVerify(t *testing.T) {
	data := []byte("snapshot payload")

	t.Run("Match", func(t *testing.T) {
		cr := NewChecksumReader(bytes.NewReader(data))
		_, err := io.Copy(io.Discard, cr)
		require.NoError(t, err)
		assert.NoError(t, cr.Verify(ComputeChecksum(data)))
	})

	t.Run("Mismatch", func(t *testing.T) {
		cr := NewChecksumReader(bytes.NewReader(data))
		_, err := io.Copy(io.Discard, cr)
		require.NoError(t, err)

		expected := ComputeChecksum(data) ^ 0xdeadbeef
		err = cr.Verify(expected)
		require.Error(t, err)
		assert.True(t, IsChecksumMismatch(err))

		var mismatch *ChecksumMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, expected, mismatch.Expected)
		assert.Equal(t, ComputeChecksum(data), mismatch.Actual)
	})
}

func TestIsChecksumMismatch(t *testing.T) {
	err := &ChecksumMismatchError{Expected: 1, Actual: 2}
	assert.True(t, IsChecksumMismatch(err))
	assert.True(t, IsChecksumMismatch(fmt.Errorf("load snapshot: %w", err)))
	assert.False(t, IsChecksumMismatch(io.ErrUnexpectedEOF))
}
