package storage

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func putU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

func TestDecodeTablePageLeaf(t *testing.T) {
	r := require.New(t)

	const pageSize = 512
	page := make([]byte, pageSize)

	cellA := []byte{6, 5, 3, 1, 17, 42, 'h', 'i'} // row_id 5
	cellB := []byte{6, 7, 3, 1, 17, 42, 'y', 'o'} // row_id 7

	cellContentOffset := 480
	copy(page[488:496], cellA)
	copy(page[480:488], cellB)

	page[0] = byte(PageTypeTableLeaf)
	putU16(page, 1, 0)
	putU16(page, 3, 2) // numCells
	putU16(page, 5, uint16(cellContentOffset))
	page[7] = 0

	putU16(page, 8, 488)  // slot 0 -> cellA (row 5)
	putU16(page, 10, 480) // slot 1 -> cellB (row 7)

	decoded, err := DecodeTablePage(page, false, pageSize, []string{"a", "b"}, "")
	r.NoError(err)
	r.Equal(PageTypeTableLeaf, decoded.Type)
	r.Len(decoded.Cells, 2)
	r.Equal(int64(5), decoded.Cells[0].RowID)
	r.Equal(int64(7), decoded.Cells[1].RowID)
}

func TestDecodeTablePageFirstPageOffset(t *testing.T) {
	r := require.New(t)

	const pageSize = 512
	page := make([]byte, pageSize)

	cellA := []byte{6, 1, 3, 1, 17, 42, 'h', 'i'}
	copy(page[490:498], cellA)

	headerAt := 100
	page[headerAt+0] = byte(PageTypeTableLeaf)
	putU16(page, headerAt+1, 0)
	putU16(page, headerAt+3, 1)
	putU16(page, headerAt+5, 490)
	page[headerAt+7] = 0
	putU16(page, headerAt+8, 490)

	decoded, err := DecodeTablePage(page, true, pageSize, []string{"a", "b"}, "")
	r.NoError(err)
	r.Len(decoded.Cells, 1)
	r.Equal(int64(1), decoded.Cells[0].RowID)
}

func TestDecodeTablePageInterior(t *testing.T) {
	r := require.New(t)

	const pageSize = 512
	page := make([]byte, pageSize)

	cellA := []byte{0, 0, 0, 2, 10} // left child 2, key 10
	copy(page[500:505], cellA)

	page[0] = byte(PageTypeTableInterior)
	putU16(page, 1, 0)
	putU16(page, 3, 1)
	putU16(page, 5, 500)
	page[7] = 0
	binary.BigEndian.PutUint32(page[8:12], 9) // rightmost pointer
	putU16(page, 12, 500)

	decoded, err := DecodeTablePage(page, false, pageSize, []string{"a"}, "")
	r.NoError(err)
	r.Equal(uint32(9), decoded.RightmostPointer)
	r.Len(decoded.Cells, 1)
	r.Equal(uint32(2), decoded.Cells[0].LeftChild)
	r.Equal(int64(10), decoded.Cells[0].Key)
}

func TestDecodeTablePageEmptyLeaf(t *testing.T) {
	r := require.New(t)

	const pageSize = 512
	page := make([]byte, pageSize)
	page[0] = byte(PageTypeTableLeaf)
	putU16(page, 5, pageSize)

	decoded, err := DecodeTablePage(page, false, pageSize, nil, "")
	r.NoError(err)
	r.Empty(decoded.Cells)
}

func TestDecodeTablePageOverlappingCellsRejected(t *testing.T) {
	r := require.New(t)

	const pageSize = 512
	page := make([]byte, pageSize)

	cellA := []byte{6, 5, 3, 1, 17, 42, 'h', 'i'}
	copy(page[480:488], cellA)

	page[0] = byte(PageTypeTableLeaf)
	putU16(page, 3, 2)
	putU16(page, 5, 480)
	// Both slots point into the same 8-byte cell: overlapping.
	putU16(page, 8, 480)
	putU16(page, 10, 482)

	_, err := DecodeTablePage(page, false, pageSize, []string{"a", "b"}, "")
	r.Error(err)
}

func TestDecodeTablePageSlotOutsideUsableRangeRejected(t *testing.T) {
	r := require.New(t)

	const pageSize = 512
	page := make([]byte, pageSize)
	page[0] = byte(PageTypeTableLeaf)
	putU16(page, 3, 1)
	putU16(page, 5, 400)
	putU16(page, 8, 10) // below cellContentOffset

	_, err := DecodeTablePage(page, false, pageSize, []string{"a"}, "")
	r.Error(err)
}
