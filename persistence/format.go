package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// snapshotMagic identifies tinystore snapshot files (ASCII "TSS1").
	snapshotMagic = [4]byte{'T', 'S', 'S', '1'}

	// formatVersion is the current snapshot format version.
	formatVersion = uint16(1)
)

const (
	// headerSize is the fixed-size prefix before the codec name.
	headerSize = 16

	// maxCodecNameLen bounds the codec name section.
	maxCodecNameLen = 255

	// maxPayloadLen bounds the payload section so a corrupted length
	// field cannot trigger a giant allocation before the checksum check.
	maxPayloadLen = 1 << 32
)

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// snapshot magic number.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned for snapshot format versions this
	// build does not understand.
	ErrInvalidVersion = errors.New("unsupported snapshot version")

	// ErrInvalidHeader is returned when header fields are malformed.
	ErrInvalidHeader = errors.New("malformed snapshot header")

	// ErrTruncated is returned when the file ends before the encoded
	// payload does.
	ErrTruncated = errors.New("truncated snapshot")
)

// SnapshotInfo describes a snapshot header without decoding the payload.
type SnapshotInfo struct {
	Version     uint16
	Compression Compression
	CodecName   string
	PayloadLen  uint64
}

// WriteSnapshot writes a complete snapshot stream to w.
//
// payload is the codec-marshaled store state; it is compressed according to
// comp before being written. The layout is:
//
//	[0:4]   magic "TSS1"
//	[4:6]   format version (little endian)
//	[6]     compression id
//	[7]     reserved
//	[8:10]  codec name length
//	[10:16] reserved
//	        codec name bytes
//	        payload length (uint64)
//	        payload bytes (compressed)
//	        CRC32 of payload bytes as stored
func WriteSnapshot(w io.Writer, codecName string, comp Compression, payload []byte) error {
	if len(codecName) == 0 || len(codecName) > maxCodecNameLen {
		return fmt.Errorf("%w: codec name length %d", ErrInvalidHeader, len(codecName))
	}
	if !comp.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(comp))
	}

	stored, err := compress(payload, comp)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	var hdr [headerSize]byte
	copy(hdr[0:4], snapshotMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], formatVersion)
	hdr[6] = uint8(comp)
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(len(codecName)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, codecName); err != nil {
		return err
	}

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(stored)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	cw := NewChecksumWriter(w)
	if _, err := cw.Write(stored); err != nil {
		return err
	}

	var sumBuf [4]byte
	binary.LittleEndian.PutUint32(sumBuf[:], cw.Sum())
	_, err = w.Write(sumBuf[:])
	return err
}

// ReadSnapshot reads a snapshot stream from r and returns the header info
// and the decompressed payload.
//
// All format violations (bad magic, unknown version, unknown compression,
// truncation, checksum mismatch) surface as typed errors so callers can
// distinguish a corrupt file from an IO failure.
func ReadSnapshot(r io.Reader) (SnapshotInfo, []byte, error) {
	var info SnapshotInfo

	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return info, nil, truncated(err)
	}
	if [4]byte(hdr[0:4]) != snapshotMagic {
		return info, nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, binary.BigEndian.Uint32(hdr[0:4]))
	}

	info.Version = binary.LittleEndian.Uint16(hdr[4:6])
	if info.Version != formatVersion {
		return info, nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, info.Version)
	}

	info.Compression = Compression(hdr[6])
	if !info.Compression.valid() {
		return info, nil, fmt.Errorf("%w: %d", ErrUnknownCompression, hdr[6])
	}

	nameLen := binary.LittleEndian.Uint16(hdr[8:10])
	if nameLen == 0 || nameLen > maxCodecNameLen {
		return info, nil, fmt.Errorf("%w: codec name length %d", ErrInvalidHeader, nameLen)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return info, nil, truncated(err)
	}
	info.CodecName = string(name)

	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return info, nil, truncated(err)
	}
	info.PayloadLen = binary.LittleEndian.Uint64(lenBuf[:])
	if info.PayloadLen > maxPayloadLen {
		return info, nil, fmt.Errorf("%w: payload length %d", ErrInvalidHeader, info.PayloadLen)
	}

	cr := NewChecksumReader(r)
	stored := make([]byte, info.PayloadLen)
	if _, err := io.ReadFull(cr, stored); err != nil {
		return info, nil, truncated(err)
	}

	var sumBuf [4]byte
	if _, err := io.ReadFull(r, sumBuf[:]); err != nil {
		return info, nil, truncated(err)
	}
	if err := cr.Verify(binary.LittleEndian.Uint32(sumBuf[:])); err != nil {
		return info, nil, err
	}

	payload, err := decompress(stored, info.Compression)
	if err != nil {
		return info, nil, fmt.Errorf("decompress payload: %w", err)
	}

	return info, payload, nil
}

// InspectFile reads and fully validates the snapshot at filename, returning
// its header info. The decoded payload is discarded.
func InspectFile(filename string) (SnapshotInfo, error) {
	var info SnapshotInfo
	err := LoadFromFile(filename, func(r io.Reader) error {
		var err error
		info, _, err = ReadSnapshot(r)
		return err
	})
	return info, err
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}

// IsFormatError reports whether err indicates a malformed or corrupt
// snapshot rather than an IO failure.
func IsFormatError(err error) bool {
	if errors.Is(err, ErrInvalidMagic) ||
		errors.Is(err, ErrInvalidVersion) ||
		errors.Is(err, ErrInvalidHeader) ||
		errors.Is(err, ErrTruncated) ||
		errors.Is(err, ErrUnknownCompression) {
		return true
	}
	return IsChecksumMismatch(err)
}
