package btree

import (
	"bytes"

	"github.com/joeandaverde/pagescan/internal/storage"
)

// FullTableScan walks every page of the table B-tree rooted at rootPage
// and returns its leaf records in ascending row-id order.
//
// Traversal is level-order using an explicit FIFO worklist rather than
// recursion: interior cells are enqueued left to right as they're read,
// and since every leaf of a B-tree sits at the same depth, draining the
// queue in that order yields leaves in ascending row-id order without
// needing to sort or reverse anything after the fact.
func FullTableScan(p *Pager, rootPage int, columnNames []string, intPKColumn string) ([]*storage.Record, error) {
	queue := []int{rootPage}
	var records []*storage.Record

	for len(queue) > 0 {
		pageNumber := queue[0]
		queue = queue[1:]

		page, err := p.ReadTablePage(pageNumber, columnNames, intPKColumn)
		if err != nil {
			return nil, err
		}

		if page.Type.IsInterior() {
			for _, cell := range page.Cells {
				queue = append(queue, int(cell.LeftChild))
			}
			queue = append(queue, int(page.RightmostPointer))
			continue
		}

		for _, cell := range page.Cells {
			records = append(records, cell.Record)
		}
	}

	return records, nil
}

// IndexLookup descends the index B-tree rooted at rootPage and returns
// the row-ids of every entry whose indexed column equals needle.
//
// Unlike FullTableScan this does not visit every page: at each interior
// cell it compares needle against the cell's key and only descends into
// the left child when needle could live there (needle <= key), and only
// follows the page's rightmost pointer when needle is at least the largest
// key it saw on that page (entries equal to that key can continue into the
// rightmost subtree). This is what makes lookups cheaper than a full scan
// for a selective predicate.
func IndexLookup(p *Pager, rootPage int, indexedColumn string, needle storage.Value) (map[int64]struct{}, error) {
	matches := map[int64]struct{}{}
	worklist := []int{rootPage}

	for len(worklist) > 0 {
		pageNumber := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		page, err := p.ReadIndexPage(pageNumber, indexedColumn)
		if err != nil {
			return nil, err
		}

		if !page.Type.IsInterior() {
			for _, cell := range page.Cells {
				key, ok := cell.Record.Get(indexedColumn)
				if ok && key.Equal(needle) {
					matches[cell.RowID] = struct{}{}
				}
			}
			continue
		}

		var maxKey storage.Value
		haveKey := false
		for _, cell := range page.Cells {
			key, ok := cell.Record.Get(indexedColumn)
			if !ok {
				continue
			}
			cmp := compareValues(needle, key)
			if cmp <= 0 {
				worklist = append(worklist, int(cell.LeftChild))
			}
			if cmp == 0 {
				matches[cell.RowID] = struct{}{}
			}
			if !haveKey || compareValues(key, maxKey) > 0 {
				maxKey = key
				haveKey = true
			}
		}
		if !haveKey || compareValues(needle, maxKey) >= 0 {
			worklist = append(worklist, int(page.RightmostPointer))
		}
	}

	return matches, nil
}

// TargetedFetch walks the table B-tree rooted at rootPage and returns
// the leaf records whose row-id is in rowIDs.
//
// At an interior cell with key K it descends into the left child only
// if some target row-id is <= K, and follows the page's rightmost
// pointer only if some target exceeds every interior key it saw. This
// bounds the traversal to the subtrees that can actually contain a
// wanted row instead of unconditionally visiting every child.
func TargetedFetch(p *Pager, rootPage int, columnNames []string, intPKColumn string, rowIDs map[int64]struct{}) ([]*storage.Record, error) {
	if len(rowIDs) == 0 {
		return nil, nil
	}

	minTarget, maxTarget := int64(0), int64(0)
	first := true
	for id := range rowIDs {
		if first || id < minTarget {
			minTarget = id
		}
		if first || id > maxTarget {
			maxTarget = id
		}
		first = false
	}

	var records []*storage.Record
	worklist := []int{rootPage}

	for len(worklist) > 0 {
		pageNumber := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		page, err := p.ReadTablePage(pageNumber, columnNames, intPKColumn)
		if err != nil {
			return nil, err
		}

		if !page.Type.IsInterior() {
			for _, cell := range page.Cells {
				if _, ok := rowIDs[cell.RowID]; ok {
					records = append(records, cell.Record)
				}
			}
			continue
		}

		maxKeySeen := int64(0)
		haveKey := false
		for _, cell := range page.Cells {
			if minTarget <= cell.Key {
				worklist = append(worklist, int(cell.LeftChild))
			}
			if !haveKey || cell.Key > maxKeySeen {
				maxKeySeen = cell.Key
				haveKey = true
			}
		}
		if !haveKey || maxTarget > maxKeySeen {
			worklist = append(worklist, int(page.RightmostPointer))
		}
	}

	return records, nil
}

// compareValues orders two storage.Values for index descent. Integer and
// real values compare numerically, with each other as well; text and blob values
// compare byte-wise regardless of kind, matching the equality rules in
// storage.Value.Equal. A null is ordered before anything else, and a
// mismatched numeric/text comparison falls back to kind order, which is
// only ever exercised by malformed or heterogeneously-typed indexes.
func compareValues(a, b storage.Value) int {
	switch {
	case a.Kind == storage.KindNull && b.Kind == storage.KindNull:
		return 0
	case a.Kind == storage.KindNull:
		return -1
	case b.Kind == storage.KindNull:
		return 1
	}

	aNumeric := a.Kind == storage.KindInteger || a.Kind == storage.KindReal
	bNumeric := b.Kind == storage.KindInteger || b.Kind == storage.KindReal
	if aNumeric && bNumeric {
		af, bf := numericValue(a), numericValue(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	aBytes, aIsBytes := bytesOf(a)
	bBytes, bIsBytes := bytesOf(b)
	if aIsBytes && bIsBytes {
		return bytes.Compare(aBytes, bBytes)
	}

	if aNumeric && !bNumeric {
		return -1
	}
	if !aNumeric && bNumeric {
		return 1
	}
	return 0
}

func numericValue(v storage.Value) float64 {
	if v.Kind == storage.KindInteger {
		return float64(v.Integer)
	}
	return v.Real
}

func bytesOf(v storage.Value) ([]byte, bool) {
	if v.Kind == storage.KindText || v.Kind == storage.KindBlob {
		return v.Bytes, true
	}
	return nil, false
}
