package command

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/pagescan/internal/query"
	"github.com/joeandaverde/pagescan/internal/query/descriptor"
)

// SelectCommand implements the SELECT verb: one line per result row,
// columns joined by Delimiter (default "|").
type SelectCommand struct {
	Path      string
	Text      string
	Delimiter string
	Log       *logrus.Logger
}

func (c *SelectCommand) Help() string {
	return strings.TrimSpace(`
Usage: pagescan <path> "SELECT ..."

Runs a narrow SELECT (projection, optional COUNT(*), optional single
WHERE column = 'value' filter) and prints one line per result row.
`)
}

func (c *SelectCommand) Synopsis() string {
	return "Run a SELECT statement"
}

func (c *SelectCommand) Run(_ []string) int {
	sel, err := descriptor.ParseSelect(c.Text)
	if err != nil {
		reportError(err)
		return 1
	}

	s, err := open(c.Path, c.Log)
	if err != nil {
		reportError(err)
		return 1
	}
	defer s.Close()

	delimiter := c.Delimiter
	if delimiter == "" {
		delimiter = "|"
	}

	rows, err := query.Execute(s.buf, s.header, s.schema, sel, c.Log)
	if err != nil {
		reportError(err)
		return 1
	}

	for _, row := range rows {
		fmt.Println(strings.Join(row, delimiter))
	}
	return 0
}
