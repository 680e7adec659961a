package command

import (
	"io"

	"github.com/mattn/go-colorable"
)

// stderr is the colorized error stream every verb writes its one-line
// failure message to. go-colorable translates ANSI codes for terminals
// (including Windows consoles) that don't understand them natively.
var stderr io.Writer = colorable.NewColorableStderr()

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// reportError writes err as pagescan's single required stderr line.
func reportError(err error) {
	_, _ = io.WriteString(stderr, ansiRed+err.Error()+ansiReset+"\n")
}
