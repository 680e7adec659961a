// Package schema parses the file header and the schema B-tree (page 1,
// the table sqlite names "sqlite_master") into a Schema value the query
// executor resolves tables and indexes against.
package schema

import (
	"strings"

	radix "github.com/armon/go-radix"
	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/pagescan/internal/btree"
	"github.com/joeandaverde/pagescan/internal/query/descriptor"
	"github.com/joeandaverde/pagescan/internal/storage"
)

// schemaColumns is the fixed five-column shape of every schema record,
// regardless of what rows.
var schemaColumns = []string{"type", "name", "tbl_name", "rootpage", "sql"}

// Table records a recognized CREATE TABLE: its name, root page, the
// original CREATE text, and the ordered column list the descriptor
// recovered from it. IntPKColumn is the declared INTEGER PRIMARY KEY
// column, or "" if the table has none.
type Table struct {
	Name        string
	RootPage    int
	SQL         string
	Columns     []string
	IntPKColumn string
}

// Index records a recognized CREATE INDEX: its name, the table it
// indexes, its root page, the original CREATE text, and the single
// indexed column (multi-column indexes are out of scope; only the first
// named column is kept).
type Index struct {
	Name      string
	TableName string
	RootPage  int
	SQL       string
	Column    string
}

// View and Trigger are recognized but not otherwise usable.
type View struct {
	Name string
	SQL  string
}

type Trigger struct {
	Name string
	SQL  string
}

// Schema is the fully-loaded contents of the schema B-tree, indexed for
// O(k) name lookup by github.com/armon/go-radix rather than a linear scan.
type Schema struct {
	tables            *radix.Tree
	indexes           *radix.Tree
	indexesByTableCol *radix.Tree
	Views             []View
	Triggers          []Trigger
}

// Load parses buf's 100-byte file header and walks its schema B-tree,
// dispatching each record by its "type" column: "table" rows are parsed
// with descriptor.ParseCreateTable for their column list, "index" rows
// with descriptor.ParseCreateIndex for their indexed column, and
// "view"/"trigger" rows are kept opaquely.
func Load(buf []byte, log *logrus.Logger) (*Schema, storage.FileHeader, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	header, err := storage.DecodeFileHeader(buf)
	if err != nil {
		return nil, header, err
	}

	pager := btree.NewPager(buf, header)
	records, err := btree.FullTableScan(pager, 1, schemaColumns, "")
	if err != nil {
		return nil, header, err
	}

	s := &Schema{
		tables:            radix.New(),
		indexes:           radix.New(),
		indexesByTableCol: radix.New(),
	}

	for _, rec := range records {
		typ, sqlText, name, tblName, rootPage, err := schemaFields(rec)
		if err != nil {
			return nil, header, err
		}

		switch typ {
		case "table":
			columns, intPK, err := descriptor.ParseCreateTable(sqlText)
			if err != nil {
				return nil, header, wrapErr(KindMalformed, err, "table %s", name)
			}
			s.tables.Insert(name, &Table{
				Name:        name,
				RootPage:    rootPage,
				SQL:         sqlText,
				Columns:     columns,
				IntPKColumn: intPK,
			})
		case "index":
			if sqlText == "" {
				// Autoindexes sqlite creates for PRIMARY KEY / UNIQUE
				// constraints have a NULL sql column and no recoverable
				// column name; they aren't usable for index_lookup.
				log.WithField("index", name).Debug("schema: skipping autoindex with no CREATE text")
				continue
			}
			column, err := descriptor.ParseCreateIndex(sqlText)
			if err != nil {
				return nil, header, wrapErr(KindMalformed, err, "index %s", name)
			}
			idx := &Index{
				Name:      name,
				TableName: tblName,
				RootPage:  rootPage,
				SQL:       sqlText,
				Column:    column,
			}
			s.indexes.Insert(name, idx)
			s.indexesByTableCol.Insert(tableColumnKey(tblName, column), idx)
		case "view":
			s.Views = append(s.Views, View{Name: name, SQL: sqlText})
		case "trigger":
			s.Triggers = append(s.Triggers, Trigger{Name: name, SQL: sqlText})
		}
	}

	log.WithField("tables", s.tables.Len()).WithField("indexes", s.indexes.Len()).Debug("schema: loaded")
	return s, header, nil
}

func schemaFields(rec *storage.Record) (typ, sqlText, name, tblName string, rootPage int, err error) {
	typeVal, ok := rec.Get("type")
	if !ok {
		return "", "", "", "", 0, newErr(KindMalformed, "schema record missing type column")
	}
	nameVal, ok := rec.Get("name")
	if !ok {
		return "", "", "", "", 0, newErr(KindMalformed, "schema record missing name column")
	}
	tblNameVal, ok := rec.Get("tbl_name")
	if !ok {
		return "", "", "", "", 0, newErr(KindMalformed, "schema record missing tbl_name column")
	}
	rootPageVal, ok := rec.Get("rootpage")
	if !ok {
		return "", "", "", "", 0, newErr(KindMalformed, "schema record missing rootpage column")
	}
	sqlVal, ok := rec.Get("sql")
	if !ok {
		return "", "", "", "", 0, newErr(KindMalformed, "schema record missing sql column")
	}

	sqlText = ""
	if sqlVal.Kind != storage.KindNull {
		sqlText = sqlVal.String()
	}

	return typeVal.String(), sqlText, nameVal.String(), tblNameVal.String(), int(rootPageVal.Integer), nil
}

func tableColumnKey(table, column string) string {
	return table + "\x00" + column
}

// Table returns the named table, if the schema declares one.
func (s *Schema) Table(name string) (*Table, bool) {
	v, ok := s.tables.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Table), true
}

// IndexOn returns the index on table's column, if one exists.
func (s *Schema) IndexOn(table, column string) (*Index, bool) {
	v, ok := s.indexesByTableCol.Get(tableColumnKey(table, column))
	if !ok {
		return nil, false
	}
	return v.(*Index), true
}

// TableNames returns the names of every user table (sqlite's own
// bookkeeping tables, prefixed "sqlite_", are excluded) in lexicographic
// order, courtesy of the radix tree's sorted walk.
func (s *Schema) TableNames() []string {
	var names []string
	s.tables.Walk(func(key string, _ interface{}) bool {
		if !strings.HasPrefix(key, "sqlite_") {
			names = append(names, key)
		}
		return false
	})
	return names
}

// TableCount returns the number of user tables, as printed by .dbinfo.
func (s *Schema) TableCount() int {
	return len(s.TableNames())
}
