// File: internal/parsers/tabstate/editlog_reconstructor.go
package tabstate

import (
	"unicode/utf16"

	"github.com/sirupsen/logrus"

	"github.com/deskforensics/go-tabstate/internal/types"
)

// EditLogReconstructor replays multi-layout edit records against a live
// buffer of UTF-16 code units. Records must be applied in on-disk order;
// offsets address the buffer as it exists immediately before each record,
// not final document positions.
type EditLogReconstructor struct {
	buf            []uint16
	deleted        []uint16
	captureDeleted bool
	log            *logrus.Entry
}

// NewEditLogReconstructor creates a reconstructor for one tab. When
// captureDeleted is set, characters removed from the buffer are retained in
// block-processing order.
func NewEditLogReconstructor(name string, captureDeleted bool) *EditLogReconstructor {
	return &EditLogReconstructor{
		captureDeleted: captureDeleted,
		log:            logrus.WithField("tab", name),
	}
}

// Apply replays one edit record. A record with neither additions nor
// deletions is a no-op.
func (e *EditLogReconstructor) Apply(block *types.MultiDataBlock) {
	switch {
	case block.NAdded > 0:
		e.insert(block.Offset, block.Data)
	case block.NDeleted > 0:
		e.remove(block.Offset, block.NDeleted)
	}
}

func (e *EditLogReconstructor) insert(offset uint64, data []uint16) {
	// Clamp before narrowing; a malformed offset can exceed the int range.
	pos := len(e.buf)
	if offset < uint64(len(e.buf)) {
		pos = int(offset)
	}

	next := make([]uint16, 0, len(e.buf)+len(data))
	next = append(next, e.buf[:pos]...)
	next = append(next, data...)
	next = append(next, e.buf[pos:]...)
	e.buf = next
}

func (e *EditLogReconstructor) remove(offset, count uint64) {
	// Clamp in the uint64 domain before narrowing; a malformed offset or
	// count can exceed the int range, and start+count can wrap.
	length := uint64(len(e.buf))
	start := offset
	if start > length {
		start = length
	}
	end := start + count
	if end > length || end < start {
		// Deletes past the current buffer end are clamped rather than
		// rejected; truncated edit logs produce them.
		e.log.Warnf("delete range [%d, %d) exceeds buffer length %d, clamping", offset, offset+count, len(e.buf))
		end = length
	}

	if e.captureDeleted {
		e.deleted = append(e.deleted, e.buf[start:end]...)
	}
	e.buf = append(e.buf[:start], e.buf[end:]...)
}

// Content returns the reconstructed tab text.
func (e *EditLogReconstructor) Content() string {
	return string(utf16.Decode(e.buf))
}

// DeletedContent returns the captured deleted characters in
// block-processing order. Empty unless capture was enabled.
func (e *EditLogReconstructor) DeletedContent() string {
	return string(utf16.Decode(e.deleted))
}

// Result returns the final output: the content, followed by the deleted
// content behind a fixed delimiter when capture is enabled.
func (e *EditLogReconstructor) Result() string {
	if !e.captureDeleted {
		return e.Content()
	}
	return e.Content() + types.DeletedContentDelimiter + e.DeletedContent()
}
