package tabstate

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/deskforensics/go-tabstate/internal/types"
)

// Byte-builder helpers shared by the package tests. They serialize the
// grammar the same way Notepad does, so every builder produces a stream
// with valid checksums unless a test corrupts it afterwards.

func appendUvarint(b []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(b, buf[:n]...)
}

func appendUTF16(b []byte, s string) []byte {
	for _, unit := range utf16.Encode([]rune(s)) {
		b = append(b, byte(unit), byte(unit>>8))
	}
	return b
}

func utf16Len(s string) uint64 {
	return uint64(len(utf16.Encode([]rune(s))))
}

// createSavedSingleBlockFile builds a saved tab whose content is stored in
// one single-layout block (fileSize != 0).
func createSavedSingleBlockFile(savedPath, content string) []byte {
	b := []byte{'N', 'P', 0x00, types.FileStateSaved}

	b = appendUvarint(b, utf16Len(savedPath))
	b = appendUTF16(b, savedPath)
	b = appendUvarint(b, utf16Len(content)) // fileSize selects the single-block layout
	b = appendUvarint(b, types.EncodingUTF16LE)
	b = appendUvarint(b, types.CarriageReturnCRLF)
	b = appendUvarint(b, 116444736000000000)
	b = append(b, make([]byte, types.ContentHashSize)...)
	b = append(b, make([]byte, 6)...)

	b = appendUvarint(b, 0) // offset
	b = appendUvarint(b, 0) // nDeleted
	b = appendUvarint(b, utf16Len(content))
	b = appendUTF16(b, content)
	b = append(b, 0x00) // reserved

	sum := ComputeChecksum(b[2:])
	return append(b, sum[:]...)
}

type editBlock struct {
	offset   uint64
	nDeleted uint64
	added    string
}

// createUnsavedMultiBlockFile builds an unsaved tab with the multi-block
// layout (fileSize == 0) and one record per edit.
func createUnsavedMultiBlockFile(blocks []editBlock) []byte {
	b := []byte{'N', 'P', 0x00, types.FileStateUnsaved}

	b = append(b, 0x01)     // reserved
	b = appendUvarint(b, 0) // fileSize selects the multi-block layout
	b = appendUvarint(b, 0) // fileSizeDuplicate
	b = append(b, 0x00, 0x00)

	reserved := []byte{0, 0, 0, 0}
	covered := append(append([]byte{}, b[2:]...), reserved...)
	sum := ComputeChecksum(covered)
	b = append(b, reserved...)
	b = append(b, sum[:]...)

	for _, block := range blocks {
		start := len(b)
		b = appendUvarint(b, block.offset)
		b = appendUvarint(b, block.nDeleted)
		b = appendUvarint(b, utf16Len(block.added))
		b = appendUTF16(b, block.added)
		blockSum := ComputeChecksum(b[start:])
		b = append(b, blockSum[:]...)
	}

	return b
}
