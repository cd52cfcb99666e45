// File: internal/parsers/tabstate/block_reader.go
package tabstate

import (
	"fmt"

	"github.com/deskforensics/go-tabstate/internal/types"
)

// ParseSingleDataBlock decodes the one content block of the single-block
// layout (fileSize != 0). Its data field is the entire recovered content.
func ParseSingleDataBlock(br *types.BinaryReader) (*types.SingleDataBlock, error) {
	block := &types.SingleDataBlock{}
	var err error

	if block.Offset, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("single block offset", err)
	}
	if block.NDeleted, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("single block deleted count", err)
	}
	if block.NAdded, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("single block added count", err)
	}
	if block.Data, err = readBlockData(br, block.NAdded); err != nil {
		return nil, err
	}
	if block.Reserved, err = br.ReadUint8(); err != nil {
		return nil, wrapRead("single block reserved byte", err)
	}
	if err = readChecksum(br, &block.Checksum); err != nil {
		return nil, err
	}

	return block, nil
}

// ParseMultiDataExtraHeader decodes the record that precedes the multi-block
// sequence (fileSize == 0).
func ParseMultiDataExtraHeader(br *types.BinaryReader) (*types.MultiDataExtraHeader, error) {
	header := &types.MultiDataExtraHeader{}

	reserved, err := br.ReadBytes(len(header.Reserved))
	if err != nil {
		return nil, wrapRead("extra header reserved bytes", err)
	}
	copy(header.Reserved[:], reserved)

	if err = readChecksum(br, &header.Checksum); err != nil {
		return nil, err
	}

	return header, nil
}

// ParseMultiDataBlock decodes one edit record. Callers must only invoke it
// when at least one byte remains; a clean end-of-stream before the first
// field is the loop's termination signal, not an error here.
func ParseMultiDataBlock(br *types.BinaryReader) (*types.MultiDataBlock, error) {
	block := &types.MultiDataBlock{}
	var err error

	if block.Offset, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("block offset", err)
	}
	if block.NDeleted, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("block deleted count", err)
	}
	if block.NAdded, err = br.ReadUvarint(); err != nil {
		return nil, wrapRead("block added count", err)
	}
	if block.NAdded > 0 {
		if block.Data, err = readBlockData(br, block.NAdded); err != nil {
			return nil, err
		}
	}
	if err = readChecksum(br, &block.Checksum); err != nil {
		return nil, err
	}

	return block, nil
}

// readBlockData reads count UTF-16 code units, bounding the declared count
// against the remaining stream before allocating.
func readBlockData(br *types.BinaryReader, count uint64) ([]uint16, error) {
	if count > uint64(br.Remaining())/2 {
		return nil, fmt.Errorf("%w: block data (%d code units declared)", ErrTruncatedStream, count)
	}
	data, err := br.ReadUTF16Units(int(count))
	if err != nil {
		return nil, wrapRead("block data", err)
	}
	return data, nil
}

func readChecksum(br *types.BinaryReader, dst *[types.ChecksumSize]byte) error {
	sum, err := br.ReadBytes(types.ChecksumSize)
	if err != nil {
		return wrapRead("checksum", err)
	}
	copy(dst[:], sum)
	return nil
}
