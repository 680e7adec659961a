package command

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// TablesCommand implements the `.tables` verb: a single space-separated,
// lexicographically sorted line of user table names.
type TablesCommand struct {
	Path string
	Log  *logrus.Logger
}

func (c *TablesCommand) Help() string {
	return strings.TrimSpace(`
Usage: pagescan <path> .tables

Prints a space-separated, sorted list of user table names.
`)
}

func (c *TablesCommand) Synopsis() string {
	return "List user table names"
}

func (c *TablesCommand) Run(_ []string) int {
	s, err := open(c.Path, c.Log)
	if err != nil {
		reportError(err)
		return 1
	}
	defer s.Close()

	fmt.Println(strings.Join(s.schema.TableNames(), " "))
	return 0
}
