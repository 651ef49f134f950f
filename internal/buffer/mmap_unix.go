//go:build unix

package buffer

import (
	"os"

	"golang.org/x/sys/unix"
)

// mappedStorage backs the Mapped storage variant: the file's bytes are
// left in the page cache and addressed directly, avoiding a full read for
// large files (spec §9 "Dual storage behind one interface").
type mappedStorage struct {
	data []byte
}

func mmapFile(f *os.File, size int64) (storage, error) {
	if size == 0 {
		return &ownedStorage{data: nil}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &mappedStorage{data: data}, nil
}

func (s *mappedStorage) Bytes() []byte { return s.data }

func (s *mappedStorage) Close() error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	return err
}
