// Command pagescan is a read-only reader and narrow query engine for a
// single SQLite-format database file: `.dbinfo`, `.tables`, and a SELECT
// statement subset.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/joeandaverde/pagescan/cmd/pagescan/command"
	"github.com/joeandaverde/pagescan/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var configPath string
	flags := flag.NewFlagSet("pagescan", flag.ContinueOnError)
	flags.StringVar(&configPath, "config", os.Getenv("PAGESCAN_CONFIG"), "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	rest := flags.Args()
	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pagescan [-config=path] <database> <.dbinfo|.tables|SELECT ...>")
		return 1
	}
	path := rest[0]
	commandText := rest[1]

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %s\n", err.Error())
		return 1
	}
	log := cfg.Logger()

	verb := "select"
	switch commandText {
	case ".dbinfo":
		verb = "dbinfo"
	case ".tables":
		verb = "tables"
	}

	commands := map[string]cli.CommandFactory{
		"dbinfo": func() (cli.Command, error) {
			return &command.DBInfoCommand{Path: path, Log: log}, nil
		},
		"tables": func() (cli.Command, error) {
			return &command.TablesCommand{Path: path, Log: log}, nil
		},
		"select": func() (cli.Command, error) {
			return &command.SelectCommand{Path: path, Text: commandText, Delimiter: cfg.Delimiter, Log: log}, nil
		},
	}

	app := &cli.CLI{
		Args:     []string{verb},
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("pagescan"),
	}

	exitCode, err := app.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		return 1
	}
	return exitCode
}
