//go:build !unix

package dbfile

import "fmt"

// openMmap has no portable implementation outside unix-like platforms;
// Open falls back to a buffered read.
func openMmap(path string) (Buffer, error) {
	return nil, fmt.Errorf("dbfile: mmap not supported on this platform")
}
