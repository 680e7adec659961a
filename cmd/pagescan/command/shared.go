// Package command implements pagescan's three CLI verbs as
// github.com/mitchellh/cli commands: .dbinfo, .tables, and a SELECT
// statement.
package command

import (
	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/pagescan/internal/dbfile"
	"github.com/joeandaverde/pagescan/internal/schema"
	"github.com/joeandaverde/pagescan/internal/storage"
)

// session is the file + schema every verb operates against.
type session struct {
	buf    []byte
	header storage.FileHeader
	schema *schema.Schema
	close  func() error
}

// open acquires path's byte buffer and parses its schema. The caller must
// call Close when done.
func open(path string, log *logrus.Logger) (*session, error) {
	buffer, err := dbfile.Open(path, log)
	if err != nil {
		return nil, err
	}

	s, header, err := schema.Load(buffer.Bytes(), log)
	if err != nil {
		_ = buffer.Close()
		return nil, err
	}

	return &session{buf: buffer.Bytes(), header: header, schema: s, close: buffer.Close}, nil
}

func (s *session) Close() error {
	return s.close()
}
