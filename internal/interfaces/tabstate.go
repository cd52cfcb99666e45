// File: internal/interfaces/tabstate.go
package interfaces

import (
	"io"
	"time"

	"github.com/deskforensics/go-tabstate/internal/types"
)

// TabHeaderReader provides access to the fixed tab state file header.
type TabHeaderReader interface {
	// FileState returns the saved/unsaved discriminator (0 or 1).
	FileState() uint8

	// Saved reports whether the tab is tied to a saved file.
	Saved() bool
}

// TabMetadataReader provides access to the metadata record that follows the
// header. Both the saved and unsaved variants carry a file size, which is
// the sole input to the block-layout choice.
type TabMetadataReader interface {
	// FileSize returns the declared content size. Nonzero selects the
	// single-block layout, zero the multi-block layout.
	FileSize() uint64

	// Saved reports which metadata variant was decoded.
	Saved() bool
}

// SavedTabMetadataReader provides access to the additional fields of
// saved-tab metadata. All fields are diagnostic pass-through.
type SavedTabMetadataReader interface {
	TabMetadataReader

	// FilePath returns the path of the saved file the tab is tied to.
	FilePath() string

	// Encoding returns the declared text encoding of the saved file.
	Encoding() uint64

	// CarriageReturnType returns the declared line ending style.
	CarriageReturnType() uint64

	// Timestamp returns the saved file's last-write time.
	Timestamp() time.Time

	// ContentHash returns the SHA-256 digest of the saved content.
	ContentHash() [types.ContentHashSize]byte

	// Metadata returns a copy of the decoded metadata record.
	Metadata() types.SavedTabMetadata
}

// TabContentReader decodes one tab state stream into recovered content.
type TabContentReader interface {
	// ReadTab consumes the stream and returns the recovered content, or a
	// fatal decode error. Checksum mismatches are logged, not returned.
	ReadTab(r io.Reader) (*types.RecoveredContent, error)
}
