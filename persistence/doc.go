// Package persistence implements the tinystore snapshot file format.
//
// A snapshot is a single self-contained binary file holding the entire store:
//
//	[header 16B][codec name][payload][crc32 4B]
//
// The header records the format version, the compression algorithm and the
// name of the codec that produced the payload, so a file can be decoded
// without any out-of-band knowledge. The payload is the codec-marshaled
// store state, optionally compressed. The CRC32 trailer covers the payload
// bytes as stored (i.e. after compression).
//
// Writes are atomic: the snapshot is written to a temp file in the target
// directory and renamed over the destination, so readers never observe a
// partially written store.
package persistence
