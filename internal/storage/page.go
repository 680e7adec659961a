package storage

// PageType identifies the on-disk shape of a B-tree page.
type PageType byte

const (
	PageTypeIndexInterior PageType = 0x02
	PageTypeTableInterior PageType = 0x05
	PageTypeIndexLeaf     PageType = 0x0A
	PageTypeTableLeaf     PageType = 0x0D
)

func (t PageType) IsInterior() bool {
	return t == PageTypeIndexInterior || t == PageTypeTableInterior
}

// Page is a decoded B-tree page: its type, its cells in slot order, and
// (for interior pages) the rightmost child pointer.
type Page struct {
	Type             PageType
	Cells            []*Cell
	RightmostPointer uint32
}

// DecodeTablePage decodes a table-interior or table-leaf page. data must
// be the full, fixed-size page window (for page 1, including the 100-byte
// file header prefix). intPKColumn, if non-empty, names the table's
// INTEGER PRIMARY KEY column.
func DecodeTablePage(data []byte, isFirstPage bool, usablePageSize int, columnNames []string, intPKColumn string) (*Page, error) {
	return decodePage(data, isFirstPage, usablePageSize, func(pageType PageType, cellData []byte) (*Cell, int, error) {
		switch pageType {
		case PageTypeTableLeaf:
			return DecodeTableLeafCell(cellData, usablePageSize, columnNames, intPKColumn)
		case PageTypeTableInterior:
			return DecodeTableInteriorCell(cellData)
		default:
			return nil, 0, newErr(KindMalformedPage, "page type 0x%02x is not a table btree page", byte(pageType))
		}
	})
}

// DecodeIndexPage decodes an index-interior or index-leaf page.
func DecodeIndexPage(data []byte, isFirstPage bool, usablePageSize int, indexedColumn string) (*Page, error) {
	return decodePage(data, isFirstPage, usablePageSize, func(pageType PageType, cellData []byte) (*Cell, int, error) {
		switch pageType {
		case PageTypeIndexLeaf:
			return DecodeIndexLeafCell(cellData, usablePageSize, indexedColumn)
		case PageTypeIndexInterior:
			return DecodeIndexInteriorCell(cellData, usablePageSize, indexedColumn)
		default:
			return nil, 0, newErr(KindMalformedPage, "page type 0x%02x is not an index btree page", byte(pageType))
		}
	})
}

type cellDecoder func(pageType PageType, cellData []byte) (*Cell, int, error)

// decodePage parses the shared page header and slot array, then invokes
// decode for each cell in slot order. Page 1's entry offset is 100 (the
// file header occupies its first 100 bytes); every other page's entry
// offset is 0.
func decodePage(data []byte, isFirstPage bool, usablePageSize int, decode cellDecoder) (*Page, error) {
	entryOffset := 0
	if isFirstPage {
		entryOffset = 100
	}

	if len(data) < entryOffset+8 {
		return nil, newErr(KindMalformedPage, "page truncated before header")
	}
	view := data[entryOffset:]

	pageType := PageType(view[0])
	numCells := int(beUint16(view[3:5]))
	cellContentOffset := int(beUint16(view[5:7]))
	if cellContentOffset == 0 {
		cellContentOffset = 65536
	}

	headerLen := 8
	var rightmost uint32
	if pageType.IsInterior() {
		headerLen = 12
		if len(view) < 12 {
			return nil, newErr(KindMalformedPage, "interior page truncated before rightmost pointer")
		}
		rightmost = beUint32(view[8:12])
	}

	slotArrayStart := entryOffset + headerLen

	cells := make([]*Cell, 0, numCells)
	type span struct{ start, end int }
	var occupied []span

	for i := 0; i < numCells; i++ {
		slotOffset := slotArrayStart + i*2
		if slotOffset+2 > len(data) {
			return nil, newErr(KindMalformedPage, "slot array entry %d out of bounds", i)
		}
		cellOffset := int(beUint16(data[slotOffset : slotOffset+2]))
		if cellOffset < cellContentOffset || cellOffset >= usablePageSize {
			return nil, newErr(KindMalformedPage, "cell %d offset %d outside [%d, %d)", i, cellOffset, cellContentOffset, usablePageSize)
		}

		cell, consumed, err := decode(pageType, data[cellOffset:])
		if err != nil {
			return nil, err
		}
		end := cellOffset + consumed
		if end > usablePageSize {
			return nil, newErr(KindMalformedPage, "cell %d extends past usable page size", i)
		}

		for _, o := range occupied {
			if cellOffset < o.end && o.start < end {
				return nil, newErr(KindMalformedPage, "cell %d overlaps an earlier cell", i)
			}
		}
		occupied = append(occupied, span{cellOffset, end})

		cells = append(cells, cell)
	}

	return &Page{Type: pageType, Cells: cells, RightmostPointer: rightmost}, nil
}

func beUint16(data []byte) uint16 {
	return uint16(data[0])<<8 | uint16(data[1])
}
