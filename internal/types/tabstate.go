// File: internal/types/tabstate.go
package types

import "time"

// Signature is the fixed two-byte magic at the start of every tab state file.
var Signature = [2]byte{'N', 'P'}

// File state values from the header. Any other value is rejected.
const (
	FileStateUnsaved uint8 = 0
	FileStateSaved   uint8 = 1
)

// Encoding values observed in saved-tab metadata. Diagnostic only; the
// decoder never branches on them.
const (
	EncodingANSI    uint64 = 1
	EncodingUTF16LE uint64 = 2
	EncodingUTF16BE uint64 = 3
	EncodingUTF8BOM uint64 = 4
	EncodingUTF8    uint64 = 5
)

// Carriage return values observed in saved-tab metadata.
const (
	CarriageReturnCRLF uint64 = 1
	CarriageReturnCR   uint64 = 2
	CarriageReturnLF   uint64 = 3
)

// ChecksumSize is the size of the big-endian CRC32 field trailing each
// checksummed record.
const ChecksumSize = 4

// ContentHashSize is the size of the SHA-256 digest stored in saved-tab
// metadata.
const ContentHashSize = 32

// Header is the fixed four-byte file header. FileState selects the shape of
// the metadata record that follows; it does not select the block layout.
type Header struct {
	Signature [2]byte
	Reserved  uint8
	FileState uint8
}

// SavedTabMetadata is the metadata record for a tab backed by a file on disk.
type SavedTabMetadata struct {
	FilePath           string
	FileSize           uint64
	Encoding           uint64
	CarriageReturnType uint64
	Timestamp          uint64 // Windows FILETIME, 100ns ticks since 1601-01-01 UTC
	ContentHash        [ContentHashSize]byte
	Reserved           [6]byte
}

// UnsavedTabMetadata is the metadata record for a tab never saved to disk.
type UnsavedTabMetadata struct {
	Reserved0         uint8
	FileSize          uint64
	FileSizeDuplicate uint64
	Reserved1         uint8
	Reserved2         uint8
}

// SingleDataBlock holds the entire tab content when the file size is known
// up front (fileSize != 0). No replay step applies.
type SingleDataBlock struct {
	Offset   uint64
	NDeleted uint64
	NAdded   uint64
	Data     []uint16 // UTF-16 code units, NAdded of them
	Reserved uint8
	Checksum [ChecksumSize]byte
}

// MultiDataExtraHeader precedes the multi-block sequence (fileSize == 0).
type MultiDataExtraHeader struct {
	Reserved [4]byte
	Checksum [ChecksumSize]byte
}

// MultiDataBlock is one edit record in the multi-block layout. Records
// repeat until the stream is exhausted; there is no count field.
type MultiDataBlock struct {
	Offset   uint64
	NDeleted uint64
	NAdded   uint64
	Data     []uint16 // UTF-16 code units, NAdded of them, absent when NAdded == 0
	Checksum [ChecksumSize]byte
}

// RecoveredContent is the final output of one file's decode.
type RecoveredContent struct {
	// Content is the reconstructed tab text. When deleted-content recovery
	// is enabled it is followed by DeletedContentDelimiter and the deleted
	// fragments in block-processing order.
	Content string

	// SourcePath identifies the input for diagnostics; it is passed through
	// untouched.
	SourcePath string

	// Saved reports which metadata variant the file carried.
	Saved bool

	// SavedMetadata is populated for saved tabs only.
	SavedMetadata *SavedTabMetadata
}

// DeletedContentDelimiter separates reconstructed content from recovered
// deleted fragments in RecoveredContent.Content.
const DeletedContentDelimiter = " --- DELETED-CONTENT: "

// filetimeEpochOffset is the number of 100ns ticks between the Windows
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochOffset = 116444736000000000

// FiletimeToTime converts a Windows FILETIME value to a time.Time in UTC.
// The zero FILETIME converts to the zero time.
func FiletimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	ticks := int64(ft) - filetimeEpochOffset
	return time.Unix(ticks/1e7, (ticks%1e7)*100).UTC()
}
