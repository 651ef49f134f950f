package buffer

import (
	"io"
	"os"
)

// ownedStorage backs the InMemory storage variant: bytes fully owned by
// the Document, no syscall teardown required.
type ownedStorage struct {
	data []byte
}

func (s *ownedStorage) Bytes() []byte { return s.data }
func (s *ownedStorage) Close() error  { return nil }

// readFull reads f from its current offset to EOF into dst.
func readFull(f *os.File, dst []byte) (int, error) {
	n, err := io.ReadFull(f, dst)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return n, err
}
