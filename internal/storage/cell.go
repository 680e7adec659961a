package storage

// CellKind identifies which of the four on-disk cell shapes a Cell holds.
type CellKind int

const (
	CellTableLeaf CellKind = iota
	CellTableInterior
	CellIndexLeaf
	CellIndexInterior
)

// Cell is the decoded form of one B-tree cell, covering all four on-disk
// variants. Which fields are meaningful depends on Kind:
//
//	CellTableLeaf:      RowID, Record
//	CellTableInterior:  LeftChild, Key
//	CellIndexLeaf:      Record (RowID mirrors Record's "row_id" column)
//	CellIndexInterior:  LeftChild, Record (RowID mirrors Record's "row_id" column)
type Cell struct {
	Kind      CellKind
	RowID     int64
	Key       int64
	LeftChild uint32
	Record    *Record
}

// RowIDColumn is the synthetic column name a decoded table-leaf cell's
// row-id is attached under when the table has no declared INTEGER PRIMARY
// KEY column of its own.
const RowIDColumn = "id"

// DecodeTableLeafCell decodes a table-leaf cell: varint payload_size,
// varint row_id, then a record over columnNames. If intPKColumn is
// non-empty, the table declares that column as an INTEGER PRIMARY KEY, so
// the NULL decoded value for that column is replaced with the row-id;
// otherwise the row-id is attached under the synthetic RowIDColumn.
func DecodeTableLeafCell(data []byte, usablePageSize int, columnNames []string, intPKColumn string) (*Cell, int, error) {
	payloadSize, n1, err := ReadVarint(data)
	if err != nil {
		return nil, 0, wrapErr(KindMalformedPage, err, "table leaf cell payload size")
	}
	if err := checkOverflow(payloadSize, usablePageSize, 35); err != nil {
		return nil, 0, err
	}

	rowID, n2, err := ReadVarint(data[n1:])
	if err != nil {
		return nil, 0, wrapErr(KindMalformedPage, err, "table leaf cell row id")
	}

	payloadStart := n1 + n2
	if payloadStart+int(payloadSize) > len(data) {
		return nil, 0, newErr(KindMalformedPage, "table leaf cell payload truncated")
	}

	record, consumed, err := DecodeRecord(data[payloadStart:payloadStart+int(payloadSize)], columnNames)
	if err != nil {
		return nil, 0, err
	}
	if consumed != int(payloadSize) {
		return nil, 0, newErr(KindMalformedRecord, "table leaf record consumed %d bytes, expected %d", consumed, payloadSize)
	}

	if intPKColumn != "" {
		record = record.With(intPKColumn, IntegerValue(rowID))
	} else {
		record = record.With(RowIDColumn, IntegerValue(rowID))
	}

	return &Cell{Kind: CellTableLeaf, RowID: rowID, Record: record}, payloadStart + int(payloadSize), nil
}

// DecodeTableInteriorCell decodes a table-interior cell: a big-endian u32
// left child pointer followed by a varint key (the maximum row-id in the
// left subtree).
func DecodeTableInteriorCell(data []byte) (*Cell, int, error) {
	if len(data) < 4 {
		return nil, 0, newErr(KindMalformedPage, "table interior cell truncated")
	}
	leftChild := beUint32(data)

	key, n, err := ReadVarint(data[4:])
	if err != nil {
		return nil, 0, wrapErr(KindMalformedPage, err, "table interior cell key")
	}

	return &Cell{Kind: CellTableInterior, LeftChild: leftChild, Key: key}, 4 + n, nil
}

// DecodeIndexLeafCell decodes an index-leaf cell: varint payload_size,
// then a record whose columns are [indexedColumn, "row_id"].
func DecodeIndexLeafCell(data []byte, usablePageSize int, indexedColumn string) (*Cell, int, error) {
	payloadSize, n1, err := ReadVarint(data)
	if err != nil {
		return nil, 0, wrapErr(KindMalformedPage, err, "index leaf cell payload size")
	}
	if err := checkOverflow(payloadSize, usablePageSize, 23); err != nil {
		return nil, 0, err
	}

	if n1+int(payloadSize) > len(data) {
		return nil, 0, newErr(KindMalformedPage, "index leaf cell payload truncated")
	}

	record, consumed, err := DecodeRecord(data[n1:n1+int(payloadSize)], []string{indexedColumn, "row_id"})
	if err != nil {
		return nil, 0, err
	}
	if consumed != int(payloadSize) {
		return nil, 0, newErr(KindMalformedRecord, "index leaf record consumed %d bytes, expected %d", consumed, payloadSize)
	}

	rowID, err := recordRowID(record)
	if err != nil {
		return nil, 0, err
	}

	return &Cell{Kind: CellIndexLeaf, RowID: rowID, Record: record}, n1 + int(payloadSize), nil
}

// DecodeIndexInteriorCell decodes an index-interior cell: a big-endian u32
// left child pointer, varint payload_size, then an index record as in
// DecodeIndexLeafCell.
func DecodeIndexInteriorCell(data []byte, usablePageSize int, indexedColumn string) (*Cell, int, error) {
	if len(data) < 4 {
		return nil, 0, newErr(KindMalformedPage, "index interior cell truncated")
	}
	leftChild := beUint32(data)

	payloadSize, n1, err := ReadVarint(data[4:])
	if err != nil {
		return nil, 0, wrapErr(KindMalformedPage, err, "index interior cell payload size")
	}
	if err := checkOverflow(payloadSize, usablePageSize, 23); err != nil {
		return nil, 0, err
	}

	payloadStart := 4 + n1
	if payloadStart+int(payloadSize) > len(data) {
		return nil, 0, newErr(KindMalformedPage, "index interior cell payload truncated")
	}

	record, consumed, err := DecodeRecord(data[payloadStart:payloadStart+int(payloadSize)], []string{indexedColumn, "row_id"})
	if err != nil {
		return nil, 0, err
	}
	if consumed != int(payloadSize) {
		return nil, 0, newErr(KindMalformedRecord, "index interior record consumed %d bytes, expected %d", consumed, payloadSize)
	}

	rowID, err := recordRowID(record)
	if err != nil {
		return nil, 0, err
	}

	return &Cell{Kind: CellIndexInterior, RowID: rowID, LeftChild: leftChild, Record: record}, payloadStart + int(payloadSize), nil
}

func recordRowID(r *Record) (int64, error) {
	v, ok := r.Get("row_id")
	if !ok || v.Kind != KindInteger {
		return 0, newErr(KindMalformedRecord, "index record missing integer row_id")
	}
	return v.Integer, nil
}

// checkOverflow rejects payloads that would require following an overflow
// page. X = usablePageSize - headerBytes; payloads beyond X are
// unsupported rather than silently truncated.
func checkOverflow(payloadSize int64, usablePageSize, headerBytes int) error {
	x := usablePageSize - headerBytes
	if payloadSize > int64(x) {
		return newErr(KindUnsupported, "payload of %d bytes exceeds in-page maximum of %d; overflow pages are not supported", payloadSize, x)
	}
	return nil
}

func beUint32(data []byte) uint32 {
	return uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
}
