//go:build !unix

package source

import "errors"

var errNoMmap = errors.New("memory mapping is not supported on this platform")

// mmapFile always fails; Open falls back to reading the file.
func mmapFile(fd uintptr, size int) ([]byte, error) {
	return nil, errNoMmap
}

func munmapFile(data []byte) error {
	return nil
}
