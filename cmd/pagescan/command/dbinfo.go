package command

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// DBInfoCommand implements the `.dbinfo` verb: database page size and the
// number of user tables.
type DBInfoCommand struct {
	Path string
	Log  *logrus.Logger
}

func (c *DBInfoCommand) Help() string {
	return strings.TrimSpace(`
Usage: pagescan <path> .dbinfo

Prints the database page size and the number of user tables.
`)
}

func (c *DBInfoCommand) Synopsis() string {
	return "Print page size and table count"
}

func (c *DBInfoCommand) Run(_ []string) int {
	s, err := open(c.Path, c.Log)
	if err != nil {
		reportError(err)
		return 1
	}
	defer s.Close()

	fmt.Printf("database page size: %d\n", s.header.PageSize)
	fmt.Printf("number of tables: %d\n", s.schema.TableCount())
	return 0
}
