//go:build !unix

package source

import "os"

// mapFile reads the whole file on platforms without a mmap backend. The
// contract the rest of the pipeline sees is identical.
func mapFile(f *os.File, size int) (data []byte, mapped bool, err error) {
	data, err = readFull(f, size)
	return data, false, err
}

func unmap(data []byte) error {
	return nil
}
