// Package btree implements the non-recursive table and index B-tree
// traversals: a full table scan, a bounded index lookup, and a
// row-id-targeted fetch.
package btree

import (
	"fmt"

	"github.com/joeandaverde/pagescan/internal/storage"
)

// Pager is a read-only view over the fixed-size page windows of a
// database file: page N occupies [(N-1)*page_size, N*page_size).
type Pager struct {
	buf            []byte
	pageSize       int
	usablePageSize int
}

// NewPager constructs a Pager over buf using header's page geometry.
func NewPager(buf []byte, header storage.FileHeader) *Pager {
	return &Pager{
		buf:            buf,
		pageSize:       header.PageSize,
		usablePageSize: header.UsablePageSize(),
	}
}

// UsablePageSize returns the usable page size this pager was built with.
func (p *Pager) UsablePageSize() int {
	return p.usablePageSize
}

func (p *Pager) window(pageNumber int) ([]byte, bool, error) {
	if pageNumber < 1 {
		return nil, false, storageErr("page number %d is not valid", pageNumber)
	}
	start := (pageNumber - 1) * p.pageSize
	end := start + p.pageSize
	if end > len(p.buf) {
		return nil, false, storageErr("page %d out of bounds", pageNumber)
	}
	return p.buf[start:end], pageNumber == 1, nil
}

// ReadTablePage decodes the table-tree page at pageNumber. intPKColumn
// names the table's INTEGER PRIMARY KEY column, or "" if it declares none.
func (p *Pager) ReadTablePage(pageNumber int, columnNames []string, intPKColumn string) (*storage.Page, error) {
	data, isFirst, err := p.window(pageNumber)
	if err != nil {
		return nil, err
	}
	return storage.DecodeTablePage(data, isFirst, p.usablePageSize, columnNames, intPKColumn)
}

// ReadIndexPage decodes the index-tree page at pageNumber.
func (p *Pager) ReadIndexPage(pageNumber int, indexedColumn string) (*storage.Page, error) {
	data, isFirst, err := p.window(pageNumber)
	if err != nil {
		return nil, err
	}
	return storage.DecodeIndexPage(data, isFirst, p.usablePageSize, indexedColumn)
}

func storageErr(msg string, args ...interface{}) error {
	return &storage.Error{Kind: storage.KindMalformedPage, Msg: fmt.Sprintf(msg, args...)}
}
