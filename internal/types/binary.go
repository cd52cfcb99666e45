// File: internal/types/binary.go
package types

import (
	"fmt"
	"io"
	"unicode/utf16"
)

// BinaryReader helps with reading the tab state binary grammar from an
// in-memory byte slice. It tracks its position so callers can recover the
// exact serialized range of any record for checksum verification.
type BinaryReader struct {
	data []byte
	pos  int
}

// NewBinaryReader creates a new binary reader over data.
func NewBinaryReader(data []byte) *BinaryReader {
	return &BinaryReader{data: data}
}

// Pos returns the current read position.
func (br *BinaryReader) Pos() int {
	return br.pos
}

// Remaining returns the number of unread bytes.
func (br *BinaryReader) Remaining() int {
	return len(br.data) - br.pos
}

// AtEOF reports whether the reader is exactly at the end of its data. This
// is the multi-block layout's only termination signal.
func (br *BinaryReader) AtEOF() bool {
	return br.pos >= len(br.data)
}

// BytesFrom returns the raw bytes consumed between start and the current
// position. The slice aliases the reader's backing data.
func (br *BinaryReader) BytesFrom(start int) []byte {
	return br.data[start:br.pos]
}

// ReadUint8 reads a single byte.
func (br *BinaryReader) ReadUint8() (uint8, error) {
	if br.Remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b := br.data[br.pos]
	br.pos++
	return b, nil
}

// ReadBytes reads a slice of bytes with the specified length. The length is
// bounded against the remaining data before any allocation, so a malformed
// length field cannot trigger unbounded memory use.
func (br *BinaryReader) ReadBytes(length int) ([]byte, error) {
	if length < 0 || length > br.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, length)
	copy(buf, br.data[br.pos:br.pos+length])
	br.pos += length
	return buf, nil
}

// ReadUvarint reads an unsigned base-128 varint: each byte contributes its
// low 7 bits at increasing shift, the high bit flags continuation.
func (br *BinaryReader) ReadUvarint() (uint64, error) {
	var value uint64
	var shift uint
	for {
		b, err := br.ReadUint8()
		if err != nil {
			return 0, err
		}
		if shift >= 64 || (shift == 63 && b&0x7f > 1) {
			return 0, fmt.Errorf("uvarint overflows 64 bits")
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
	}
}

// ReadUTF16Units reads count little-endian 2-byte code units.
func (br *BinaryReader) ReadUTF16Units(count int) ([]uint16, error) {
	if count < 0 || count*2 > br.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	units := make([]uint16, count)
	for i := 0; i < count; i++ {
		units[i] = uint16(br.data[br.pos]) | uint16(br.data[br.pos+1])<<8
		br.pos += 2
	}
	return units, nil
}

// ReadUTF16String reads count code units and decodes them to a string.
func (br *BinaryReader) ReadUTF16String(count int) (string, error) {
	units, err := br.ReadUTF16Units(count)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}
