package tabstate

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskforensics/go-tabstate/internal/types"
)

func TestTabReader_SingleBlockFile(t *testing.T) {
	data := createSavedSingleBlockFile(`C:\notes\hello.txt`, "hello")

	reader := NewTabReader("hello.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "hello", content.Content)
	assert.Equal(t, "hello.bin", content.SourcePath)
	assert.True(t, content.Saved)
	require.NotNil(t, content.SavedMetadata)
	assert.Equal(t, `C:\notes\hello.txt`, content.SavedMetadata.FilePath)
	assert.Equal(t, uint64(5), content.SavedMetadata.FileSize)
}

func TestTabReader_MultiBlockInsertOnly(t *testing.T) {
	data := createUnsavedMultiBlockFile([]editBlock{
		{offset: 0, added: "hello"},
		{offset: 5, added: " world"},
	})

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "hello world", content.Content)
	assert.False(t, content.Saved)
	assert.Nil(t, content.SavedMetadata)
}

func TestTabReader_MultiBlockInsertAndDelete(t *testing.T) {
	blocks := []editBlock{
		{offset: 0, added: "hello"},
		{offset: 5, added: " world"},
		{offset: 5, nDeleted: 6},
	}

	t.Run("without deleted content", func(t *testing.T) {
		reader := NewTabReader("tab.bin", false)
		content, err := reader.ReadTab(bytes.NewReader(createUnsavedMultiBlockFile(blocks)))
		require.NoError(t, err)
		assert.Equal(t, "hello", content.Content)
	})

	t.Run("with deleted content", func(t *testing.T) {
		reader := NewTabReader("tab.bin", true)
		content, err := reader.ReadTab(bytes.NewReader(createUnsavedMultiBlockFile(blocks)))
		require.NoError(t, err)
		assert.Equal(t, "hello"+types.DeletedContentDelimiter+" world", content.Content)
	})
}

func TestTabReader_EmptyMultiBlockSequence(t *testing.T) {
	// A file that ends right after the extra header holds an empty tab.
	data := createUnsavedMultiBlockFile(nil)

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, content.Content)
}

func TestTabReader_ChecksumMismatchIsNotFatal(t *testing.T) {
	data := createSavedSingleBlockFile(`C:\n.txt`, "hello")

	// Flip one byte inside the block's data region, breaking its checksum.
	corrupted := append([]byte{}, data...)
	corrupted[len(corrupted)-7] ^= 0xff

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(corrupted))
	require.NoError(t, err, "checksum mismatch must not abort decoding")

	// The corrupted bytes are returned as read.
	assert.Equal(t, 5, utf8.RuneCountInString(content.Content))
	assert.NotEqual(t, "hello", content.Content)
}

func TestTabReader_MultiBlockChecksumMismatchIsNotFatal(t *testing.T) {
	data := createUnsavedMultiBlockFile([]editBlock{{offset: 0, added: "hello"}})

	// Break the last block checksum byte.
	corrupted := append([]byte{}, data...)
	corrupted[len(corrupted)-1] ^= 0xff

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(corrupted))
	require.NoError(t, err)
	assert.Equal(t, "hello", content.Content)
}

func TestTabReader_MalformedSignature(t *testing.T) {
	data := createSavedSingleBlockFile(`C:\n.txt`, "hello")
	data[0] = 'X'

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Nil(t, content)
}

func TestTabReader_TruncatedMidBlockIsFatal(t *testing.T) {
	data := createUnsavedMultiBlockFile([]editBlock{
		{offset: 0, added: "hello"},
		{offset: 5, added: " world"},
	})

	// Cut inside the second block's data.
	truncated := data[:len(data)-8]

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, ErrTruncatedStream)
	assert.Nil(t, content)
}

func TestTabReader_LayoutFollowsFileSizeNotFileState(t *testing.T) {
	// A saved tab whose metadata declares fileSize == 0 must decode with
	// the multi-block layout even though fileState is 1.
	b := []byte{'N', 'P', 0x00, types.FileStateSaved}
	b = appendUvarint(b, utf16Len(`C:\n.txt`))
	b = appendUTF16(b, `C:\n.txt`)
	b = appendUvarint(b, 0) // fileSize zero despite saved state
	b = appendUvarint(b, types.EncodingUTF16LE)
	b = appendUvarint(b, types.CarriageReturnCRLF)
	b = appendUvarint(b, 0)
	b = append(b, make([]byte, types.ContentHashSize)...)
	b = append(b, make([]byte, 6)...)

	reserved := []byte{0, 0, 0, 0}
	sum := ComputeChecksum(append(append([]byte{}, b[2:]...), reserved...))
	b = append(b, reserved...)
	b = append(b, sum[:]...)

	start := len(b)
	b = appendUvarint(b, 0)
	b = appendUvarint(b, 0)
	b = appendUvarint(b, utf16Len("multi"))
	b = appendUTF16(b, "multi")
	blockSum := ComputeChecksum(b[start:])
	b = append(b, blockSum[:]...)

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, "multi", content.Content)
	assert.True(t, content.Saved)
}

func TestTabReader_OutOfRangeEditOffsets(t *testing.T) {
	// A malformed file can carry arbitrary 64-bit offsets and counts;
	// decoding must clamp them, not fail or crash.
	data := createUnsavedMultiBlockFile([]editBlock{
		{offset: 0, added: "hello"},
		{offset: 1 << 63, nDeleted: 1},
	})

	reader := NewTabReader("tab.bin", false)
	content, err := reader.ReadTab(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "hello", content.Content)
}

func TestTabReader_Idempotent(t *testing.T) {
	data := createUnsavedMultiBlockFile([]editBlock{
		{offset: 0, added: "hello"},
		{offset: 5, added: " world"},
		{offset: 0, nDeleted: 6},
	})

	reader := NewTabReader("tab.bin", true)
	first, err := reader.ReadTab(bytes.NewReader(data))
	require.NoError(t, err)
	second, err := reader.ReadTab(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}
