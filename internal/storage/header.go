package storage

import "bytes"

// magicPrefix is the standard 16-byte magic string at the start of the
// file: "SQLite format 3" followed by its NUL terminator.
var magicPrefix = []byte("SQLite format 3\000")

// FileHeader is the subset of the 100-byte file header this core uses.
type FileHeader struct {
	PageSize            int
	EndPageReservedBytes int
	SizeInPages          uint32
}

// UsablePageSize is PageSize minus the reserved tail bytes.
func (h FileHeader) UsablePageSize() int {
	return h.PageSize - h.EndPageReservedBytes
}

// DecodeFileHeader parses the first 100 bytes of the file. The magic
// string is validated when present-length data allows it; page_size must
// be a power of two in [512, 65536], with the on-disk value 1 meaning
// 65536.
func DecodeFileHeader(data []byte) (FileHeader, error) {
	if len(data) < 100 {
		return FileHeader{}, newErr(KindMalformedHeader, "file header truncated: got %d bytes, need 100", len(data))
	}

	if !bytes.HasPrefix(data, magicPrefix) {
		return FileHeader{}, newErr(KindMalformedHeader, "missing SQLite format 3 magic string")
	}

	rawPageSize := beUint16(data[16:18])
	pageSize := int(rawPageSize)
	if rawPageSize == 1 {
		pageSize = 65536
	}
	if pageSize < 512 || pageSize > 65536 || pageSize&(pageSize-1) != 0 {
		return FileHeader{}, newErr(KindMalformedHeader, "page size %d is not a power of two in [512, 65536]", pageSize)
	}

	reserved := int(data[20])
	sizeInPages := beUint32(data[28:32])

	return FileHeader{
		PageSize:             pageSize,
		EndPageReservedBytes: reserved,
		SizeInPages:          sizeInPages,
	}, nil
}
