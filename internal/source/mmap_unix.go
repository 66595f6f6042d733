//go:build unix

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f read-only. Some filesystems refuse mmap; those fall back
// to a plain read, reported via the mapped return.
func mapFile(f *os.File, size int) (data []byte, mapped bool, err error) {
	data, err = unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return data, true, nil
	}

	data, err = readFull(f, size)
	return data, false, err
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}
