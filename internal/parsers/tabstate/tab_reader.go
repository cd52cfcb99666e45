// File: internal/parsers/tabstate/tab_reader.go
package tabstate

import (
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/sirupsen/logrus"

	"github.com/deskforensics/go-tabstate/internal/interfaces"
	"github.com/deskforensics/go-tabstate/internal/types"
)

// TabReader decodes one tab state stream end to end: header, metadata,
// blocks and, for the multi-block layout, edit-log replay.
type TabReader struct {
	name           string
	includeDeleted bool
	log            *logrus.Entry
}

// Ensure interface compliance
var _ interfaces.TabContentReader = (*TabReader)(nil)

// NewTabReader creates a reader for one tab state file. name identifies the
// input in diagnostics and is passed through to the result.
func NewTabReader(name string, includeDeleted bool) *TabReader {
	return &TabReader{
		name:           name,
		includeDeleted: includeDeleted,
		log:            logrus.WithField("tab", name),
	}
}

// ReadTab consumes the stream and returns the recovered content. Checksum
// mismatches are logged and decoding continues; structural failures abort
// with ErrInvalidFormat or ErrTruncatedStream.
func (t *TabReader) ReadTab(r io.Reader) (*types.RecoveredContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tab state stream: %w", err)
	}
	br := types.NewBinaryReader(data)

	header, err := NewHeaderReader(br)
	if err != nil {
		return nil, err
	}

	meta, err := NewMetadataReader(br, header.FileState())
	if err != nil {
		return nil, err
	}

	// Every checksum range starts right after the signature and runs
	// through the metadata record.
	preamble := br.BytesFrom(len(types.Signature))

	var content string
	if meta.FileSize() != 0 {
		content, err = t.readSingleBlock(br, preamble)
	} else {
		content, err = t.readMultiBlocks(br, preamble)
	}
	if err != nil {
		return nil, err
	}

	result := &types.RecoveredContent{
		Content:    content,
		SourcePath: t.name,
		Saved:      meta.Saved(),
	}
	if saved, ok := meta.(interfaces.SavedTabMetadataReader); ok {
		m := saved.Metadata()
		result.SavedMetadata = &m
	}
	return result, nil
}

// readSingleBlock handles the fileSize != 0 layout: exactly one content
// block whose data is the entire tab text, no replay.
func (t *TabReader) readSingleBlock(br *types.BinaryReader, preamble []byte) (string, error) {
	start := br.Pos()
	block, err := ParseSingleDataBlock(br)
	if err != nil {
		return "", err
	}

	raw := br.BytesFrom(start)
	covered := append(append([]byte{}, preamble...), raw[:len(raw)-types.ChecksumSize]...)
	if !VerifyChecksum(covered, block.Checksum) {
		t.log.Warnf("CRC32 mismatch in single-block file (stored=%x, actual=%x)",
			block.Checksum, ComputeChecksum(covered))
	}

	return string(utf16.Decode(block.Data)), nil
}

// readMultiBlocks handles the fileSize == 0 layout: an extra header, then
// edit records until the stream is exhausted. Clean end-of-stream at the
// top of an iteration is the only termination signal; end-of-stream inside
// a record is fatal.
func (t *TabReader) readMultiBlocks(br *types.BinaryReader, preamble []byte) (string, error) {
	extra, err := ParseMultiDataExtraHeader(br)
	if err != nil {
		return "", err
	}

	covered := append(append([]byte{}, preamble...), extra.Reserved[:]...)
	if !VerifyChecksum(covered, extra.Checksum) {
		t.log.Warnf("CRC32 mismatch in multi-block extra header (stored=%x, actual=%x)",
			extra.Checksum, ComputeChecksum(covered))
	}

	reconstructor := NewEditLogReconstructor(t.name, t.includeDeleted)
	for index := 0; !br.AtEOF(); index++ {
		start := br.Pos()
		block, err := ParseMultiDataBlock(br)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", index, err)
		}

		raw := br.BytesFrom(start)
		body := raw[:len(raw)-types.ChecksumSize]
		if !VerifyChecksum(body, block.Checksum) {
			t.log.Warnf("CRC32 mismatch in block %d (stored=%x, actual=%x)",
				index, block.Checksum, ComputeChecksum(body))
		}

		reconstructor.Apply(block)
	}

	return reconstructor.Result(), nil
}
