//go:build unix

package dbfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapBuffer is a Buffer backed by a read-only mmap of the whole file.
type mmapBuffer struct {
	data []byte
}

func (b *mmapBuffer) Bytes() []byte { return b.data }

func (b *mmapBuffer) Close() error {
	if b.data == nil {
		return nil
	}
	err := unix.Munmap(b.data)
	b.data = nil
	return err
}

// openMmap maps path read-only for its entire size.
func openMmap(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("dbfile: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("dbfile: mmap %s: %w", path, err)
	}

	return &mmapBuffer{data: data}, nil
}
