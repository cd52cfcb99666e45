// File: internal/parsers/tabstate/header_reader.go
package tabstate

import (
	"fmt"

	"github.com/deskforensics/go-tabstate/internal/interfaces"
	"github.com/deskforensics/go-tabstate/internal/types"
)

// headerReader implements the TabHeaderReader interface
type headerReader struct {
	header *types.Header
}

// Ensure interface compliance
var _ interfaces.TabHeaderReader = (*headerReader)(nil)

// NewHeaderReader decodes and validates the fixed file header from the
// current stream position.
func NewHeaderReader(br *types.BinaryReader) (interfaces.TabHeaderReader, error) {
	header, err := parseHeader(br)
	if err != nil {
		return nil, err
	}
	return &headerReader{header: header}, nil
}

// parseHeader reads the signature, reserved byte and file state.
func parseHeader(br *types.BinaryReader) (*types.Header, error) {
	sig, err := br.ReadBytes(len(types.Signature))
	if err != nil {
		return nil, wrapRead("signature", err)
	}

	header := &types.Header{}
	copy(header.Signature[:], sig)
	if header.Signature != types.Signature {
		return nil, fmt.Errorf("%w: bad signature % x", ErrInvalidFormat, sig)
	}

	if header.Reserved, err = br.ReadUint8(); err != nil {
		return nil, wrapRead("header reserved byte", err)
	}
	if header.FileState, err = br.ReadUint8(); err != nil {
		return nil, wrapRead("file state", err)
	}
	if header.FileState != types.FileStateUnsaved && header.FileState != types.FileStateSaved {
		return nil, fmt.Errorf("%w: unrecognized file state 0x%02x", ErrInvalidFormat, header.FileState)
	}

	return header, nil
}

func (r *headerReader) FileState() uint8 {
	return r.header.FileState
}

func (r *headerReader) Saved() bool {
	return r.header.FileState == types.FileStateSaved
}
