// Package dbfile acquires the immutable byte buffer the rest of pagescan
// treats as the whole database file, preferring a memory map and falling
// back to a single buffered read when mapping isn't available.
package dbfile

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Buffer is the random-access view over a database file. Implementations
// own whatever resource backs Bytes (a mapped region, or a heap slice) and
// release it on Close.
type Buffer interface {
	Bytes() []byte
	Close() error
}

// Open acquires path as a Buffer, preferring a read-only memory map where
// the platform supports it (openMmap, defined per-OS) and falling back to
// a single buffered read otherwise. The choice is logged at debug level
// so a caller chasing down performance or platform quirks can see which
// path was taken without instrumenting the call site.
func Open(path string, log *logrus.Logger) (Buffer, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if buf, err := openMmap(path); err == nil {
		log.WithField("path", path).Debug("dbfile: opened via mmap")
		return buf, nil
	} else {
		log.WithError(err).WithField("path", path).Debug("dbfile: mmap unavailable, falling back to buffered read")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dbfile: read %s: %w", path, err)
	}

	log.WithField("path", path).WithField("bytes", len(data)).Debug("dbfile: opened via buffered read")
	return heapBuffer(data), nil
}

// heapBuffer is a Buffer backed by a plain in-memory slice; Close is a
// no-op since there is nothing to unmap.
type heapBuffer []byte

func (b heapBuffer) Bytes() []byte { return b }
func (b heapBuffer) Close() error  { return nil }
