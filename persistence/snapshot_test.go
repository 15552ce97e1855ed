package persistence

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	payload := []byte(`{"label":"demo","strict_duplicates":false,"items":[]}`)

	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSnapshot(&buf, "go-json", comp, payload))

			info, got, err := ReadSnapshot(&buf)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, "go-json", info.CodecName)
			assert.Equal(t, comp, info.Compression)
			assert.Equal(t, formatVersion, info.Version)
		})
	}
}

func TestSnapshotEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "json", CompressionNone, nil))

	info, got, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, uint64(0), info.PayloadLen)
}

func TestSnapshotRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "json", CompressionNone, []byte("x")))

	data := buf.Bytes()
	data[0] = 'X'

	_, _, err := ReadSnapshot(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidMagic)
	assert.True(t, IsFormatError(err))
}

func TestSnapshotRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "json", CompressionNone, []byte("x")))

	data := buf.Bytes()
	data[4] = 0xFF

	_, _, err := ReadSnapshot(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestSnapshotRejectsUnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "json", CompressionNone, []byte("x")))

	data := buf.Bytes()
	data[6] = 0x7F

	_, _, err := ReadSnapshot(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrUnknownCompression)
}

func TestSnapshotRejectsTruncation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "go-json", CompressionNone, []byte(`{"label":"demo"}`)))
	data := buf.Bytes()

	// Chop the stream at several points: inside the header, inside the
	// payload, and inside the checksum trailer.
	for _, n := range []int{0, 8, headerSize + 2, len(data) - 6, len(data) - 2} {
		_, _, err := ReadSnapshot(bytes.NewReader(data[:n]))
		require.ErrorIs(t, err, ErrTruncated, "cut at %d", n)
		assert.True(t, IsFormatError(err))
	}
}

func TestSnapshotRejectsBitFlip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "go-json", CompressionNone, []byte(`{"label":"demo"}`)))

	data := buf.Bytes()
	data[len(data)-8] ^= 0x01 // flip a payload bit

	_, _, err := ReadSnapshot(bytes.NewReader(data))
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
	assert.True(t, IsFormatError(err))
}

func TestSnapshotRejectsAbsurdPayloadLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, "go-json", CompressionNone, []byte(`{}`)))

	// Patch the 8-byte payload length field (after header + codec name).
	data := buf.Bytes()
	off := headerSize + len("go-json")
	for i := 0; i < 8; i++ {
		data[off+i] = 0xFF
	}

	_, _, err := ReadSnapshot(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func TestWriteSnapshotRejectsBadCodecName(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteSnapshot(&buf, "", CompressionNone, []byte("x")))
}

func TestParseCompression(t *testing.T) {
	for name, want := range map[string]Compression{
		"":     CompressionNone,
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZstd,
	} {
		got, err := ParseCompression(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "store.tsdb")

	require.NoError(t, SaveToFile(target, func(w io.Writer) error {
		return WriteSnapshot(w, "json", CompressionNone, []byte(`{}`))
	}))

	// A second dump replaces the previous file wholesale.
	require.NoError(t, SaveToFile(target, func(w io.Writer) error {
		return WriteSnapshot(w, "json", CompressionNone, []byte(`{"label":"v2"}`))
	}))

	var payload []byte
	require.NoError(t, LoadFromFile(target, func(r io.Reader) error {
		var err error
		_, payload, err = ReadSnapshot(r)
		return err
	}))
	assert.Equal(t, []byte(`{"label":"v2"}`), payload)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.tsdb", entries[0].Name())
}

func TestSaveToFileWriteError(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "store.tsdb")

	sentinel := errors.New("encode failed")
	err := SaveToFile(target, func(w io.Writer) error { return sentinel })
	require.ErrorIs(t, err, sentinel)

	// Failed dump leaves neither the target nor temp debris behind.
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestInspectFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "store.tsdb")

	require.NoError(t, SaveToFile(target, func(w io.Writer) error {
		return WriteSnapshot(w, "go-json", CompressionZstd, []byte(`{"label":"demo"}`))
	}))

	info, err := InspectFile(target)
	require.NoError(t, err)
	assert.Equal(t, "go-json", info.CodecName)
	assert.Equal(t, CompressionZstd, info.Compression)
}
