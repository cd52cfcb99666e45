// File: internal/parsers/tabstate/checksum_verifier.go
package tabstate

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/deskforensics/go-tabstate/internal/types"
)

// ComputeChecksum performs a CRC32 over data and returns it in the format's
// stored form: four bytes, big-endian.
func ComputeChecksum(data []byte) [types.ChecksumSize]byte {
	var sum [types.ChecksumSize]byte
	binary.BigEndian.PutUint32(sum[:], crc32.ChecksumIEEE(data))
	return sum
}

// VerifyChecksum recomputes the CRC32 of data and compares it against the
// stored value. A mismatch is never fatal to decoding; callers log it and
// keep the data as read.
func VerifyChecksum(data []byte, stored [types.ChecksumSize]byte) bool {
	return ComputeChecksum(data) == stored
}
