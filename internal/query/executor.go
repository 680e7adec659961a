// Package query executes a recognized SELECT against a loaded Schema: it
// resolves the target table, optionally accelerates an equality filter
// through an index, drives the B-tree walker, and projects matching rows
// into stringified output.
package query

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/pagescan/internal/btree"
	"github.com/joeandaverde/pagescan/internal/query/descriptor"
	"github.com/joeandaverde/pagescan/internal/schema"
	"github.com/joeandaverde/pagescan/internal/storage"
)

// Row is one result row: the stringified form of each projected column.
type Row []string

type rowWithID struct {
	id     int64
	record *storage.Record
}

// Execute runs sel against buf's table B-trees, per the plan the schema
// supports:
//
//  1. Resolve the table's root page; fail with KindNoSuchTable if absent.
//  2. If sel has one filter and an index exists on its column, use
//     IndexLookup then TargetedFetch and skip the post-filter.
//  3. Otherwise run a FullTableScan and post-filter every row.
//  4. Sort by row-id (the walker already guarantees this for a full scan;
//     sorting again here makes the index-assisted plan produce output
//     identical to the full-scan plan, as required of the two plans).
//  5. Project the requested columns into stringified rows, or, if the
//     projection is COUNT(*), collapse to a single row holding the count.
func Execute(buf []byte, header storage.FileHeader, s *schema.Schema, sel *descriptor.Select, log *logrus.Logger) ([]Row, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	logger := log.WithField("query_id", uuid.New().String()).WithField("table", sel.Table)
	logger.Debug("query: starting")

	table, ok := s.Table(sel.Table)
	if !ok {
		return nil, newErr(KindNoSuchTable, "no such table: %s", sel.Table)
	}

	pager := btree.NewPager(buf, header)

	var rows []rowWithID
	postFilter := true

	if sel.Filter != nil {
		if idx, ok := s.IndexOn(sel.Table, sel.Filter.Column); ok {
			logger.WithField("index", idx.Name).Debug("query: using index-assisted plan")

			needle := storage.TextValue(sel.Filter.Value)
			rowIDs, err := btree.IndexLookup(pager, idx.RootPage, idx.Column, needle)
			if err != nil {
				return nil, err
			}
			records, err := btree.TargetedFetch(pager, table.RootPage, table.Columns, table.IntPKColumn, rowIDs)
			if err != nil {
				return nil, err
			}
			postFilter = false
			for _, rec := range records {
				id, err := rowID(rec, table)
				if err != nil {
					return nil, err
				}
				rows = append(rows, rowWithID{id, rec})
			}
		}
	}

	if rows == nil && postFilter {
		logger.Debug("query: using full-scan plan")
		records, err := btree.FullTableScan(pager, table.RootPage, table.Columns, table.IntPKColumn)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			id, err := rowID(rec, table)
			if err != nil {
				return nil, err
			}
			rows = append(rows, rowWithID{id, rec})
		}
	}

	if postFilter && sel.Filter != nil {
		needle := storage.TextValue(sel.Filter.Value)
		filtered := rows[:0]
		for _, rw := range rows {
			val, ok := rw.record.Get(sel.Filter.Column)
			if !ok {
				return nil, newErr(KindNoSuchColumn, "no such column: %s", sel.Filter.Column)
			}
			if val.Equal(needle) {
				filtered = append(filtered, rw)
			}
		}
		rows = filtered
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].id < rows[j].id })

	if sel.Projection.IsCount {
		return []Row{{fmt.Sprintf("%d", len(rows))}}, nil
	}

	out := make([]Row, 0, len(rows))
	for _, rw := range rows {
		values := make([]string, 0, len(sel.Projection.Columns))
		for _, col := range sel.Projection.Columns {
			v, ok := rw.record.Get(col)
			if !ok {
				return nil, newErr(KindNoSuchColumn, "no such column: %s", col)
			}
			values = append(values, v.String())
		}
		out = append(out, values)
	}

	logger.WithField("rows", len(out)).Debug("query: done")
	return out, nil
}

func rowID(rec *storage.Record, table *schema.Table) (int64, error) {
	col := table.IntPKColumn
	if col == "" {
		col = storage.RowIDColumn
	}
	v, ok := rec.Get(col)
	if !ok || v.Kind != storage.KindInteger {
		return 0, newErr(KindNoSuchColumn, "missing row id column %s", col)
	}
	return v.Integer, nil
}
