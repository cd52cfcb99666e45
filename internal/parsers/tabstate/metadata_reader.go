// File: internal/parsers/tabstate/metadata_reader.go
package tabstate

import (
	"fmt"
	"time"

	"github.com/deskforensics/go-tabstate/internal/interfaces"
	"github.com/deskforensics/go-tabstate/internal/types"
)

// savedMetadataReader implements the SavedTabMetadataReader interface
type savedMetadataReader struct {
	meta *types.SavedTabMetadata
}

// unsavedMetadataReader implements the TabMetadataReader interface
type unsavedMetadataReader struct {
	meta *types.UnsavedTabMetadata
}

// Ensure interface compliance
var (
	_ interfaces.SavedTabMetadataReader = (*savedMetadataReader)(nil)
	_ interfaces.TabMetadataReader      = (*unsavedMetadataReader)(nil)
)

// NewMetadataReader decodes the metadata record matching fileState from the
// current stream position. The file state shapes the record only; the block
// layout downstream is chosen by the record's file size field alone.
func NewMetadataReader(br *types.BinaryReader, fileState uint8) (interfaces.TabMetadataReader, error) {
	switch fileState {
	case types.FileStateSaved:
		meta, err := parseSavedMetadata(br)
		if err != nil {
			return nil, err
		}
		return &savedMetadataReader{meta: meta}, nil
	case types.FileStateUnsaved:
		meta, err := parseUnsavedMetadata(br)
		if err != nil {
			return nil, err
		}
		return &unsavedMetadataReader{meta: meta}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized file state 0x%02x", ErrInvalidFormat, fileState)
	}
}

func parseSavedMetadata(br *types.BinaryReader) (*types.SavedTabMetadata, error) {
	pathLen, err := br.ReadUvarint()
	if err != nil {
		return nil, wrapRead("file path length", err)
	}
	// Bound the declared length against the remaining stream before sizing
	// the allocation.
	if pathLen > uint64(br.Remaining())/2 {
		return nil, fmt.Errorf("%w: file path (%d code units declared)", ErrTruncatedStream, pathLen)
	}

	meta := &types.SavedTabMetadata{}
	if meta.FilePath, err = br.ReadUTF16String(int(pathLen)); err != nil {
		return nil, wrapRead("file path", err)
	}
	if meta.FileSize, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("file size", err)
	}
	if meta.Encoding, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("encoding", err)
	}
	if meta.CarriageReturnType, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("carriage return type", err)
	}
	if meta.Timestamp, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("timestamp", err)
	}

	hash, err := br.ReadBytes(types.ContentHashSize)
	if err != nil {
		return nil, wrapRead("content hash", err)
	}
	copy(meta.ContentHash[:], hash)

	reserved, err := br.ReadBytes(len(meta.Reserved))
	if err != nil {
		return nil, wrapRead("saved metadata reserved bytes", err)
	}
	copy(meta.Reserved[:], reserved)

	return meta, nil
}

func parseUnsavedMetadata(br *types.BinaryReader) (*types.UnsavedTabMetadata, error) {
	meta := &types.UnsavedTabMetadata{}
	var err error

	if meta.Reserved0, err = br.ReadUint8(); err != nil {
		return nil, wrapRead("unsaved metadata reserved byte", err)
	}
	if meta.FileSize, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("file size", err)
	}
	if meta.FileSizeDuplicate, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("file size duplicate", err)
	}
	if meta.Reserved1, err = br.ReadUint8(); err != nil {
		return nil, wrapRead("unsaved metadata reserved byte", err)
	}
	if meta.Reserved2, err = br.ReadUint8(); err != nil {
		return nil, wrapRead("unsaved metadata reserved byte", err)
	}

	return meta, nil
}

// Implementation of SavedTabMetadataReader interface

func (r *savedMetadataReader) FileSize() uint64 {
	return r.meta.FileSize
}

func (r *savedMetadataReader) Saved() bool {
	return true
}

func (r *savedMetadataReader) FilePath() string {
	return r.meta.FilePath
}

func (r *savedMetadataReader) Encoding() uint64 {
	return r.meta.Encoding
}

func (r *savedMetadataReader) CarriageReturnType() uint64 {
	return r.meta.CarriageReturnType
}

func (r *savedMetadataReader) Timestamp() time.Time {
	return types.FiletimeToTime(r.meta.Timestamp)
}

func (r *savedMetadataReader) ContentHash() [types.ContentHashSize]byte {
	return r.meta.ContentHash
}

func (r *savedMetadataReader) Metadata() types.SavedTabMetadata {
	return *r.meta
}

// Implementation of TabMetadataReader interface

func (r *unsavedMetadataReader) FileSize() uint64 {
	return r.meta.FileSize
}

func (r *unsavedMetadataReader) Saved() bool {
	return false
}
