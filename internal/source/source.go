// Package source loads image files and request bodies into memory for
// parsing.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrIsDirectory = errors.New("is a directory")
	ErrEmpty       = errors.New("empty image")
	ErrTooLarge    = errors.New("image too large")
)

// Image is the complete contents of an image file. Data is read-only.
type Image struct {
	Path string
	Data []byte

	mapped bool
}

// Open loads the file at path. Files larger than maxBytes are rejected;
// maxBytes <= 0 means no limit. The file is memory-mapped where the
// platform supports it and read otherwise. Close releases the data.
func Open(path string, maxBytes int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	size := fi.Size()
	if size == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	if maxBytes > 0 && size > maxBytes {
		return nil, fmt.Errorf("%s: %d bytes exceeds limit of %d: %w", path, size, maxBytes, ErrTooLarge)
	}

	// Memory-map the entire file read-only. The fd can be closed after mmap.
	if data, err := mmapFile(f.Fd(), int(size)); err == nil {
		return &Image{Path: path, Data: data, mapped: true}, nil
	}

	data, err := io.ReadAll(io.LimitReader(f, size))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Image{Path: path, Data: data}, nil
}

// Read loads an image from r, such as standard input or a request body.
func Read(name string, r io.Reader, maxBytes int64) (*Image, error) {
	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s: exceeds limit of %d bytes: %w", name, maxBytes, ErrTooLarge)
	}
	return &Image{Path: name, Data: data}, nil
}

// Close releases the image data. The Image must not be used afterwards.
func (img *Image) Close() error {
	if img == nil || img.Data == nil {
		return nil
	}
	data := img.Data
	img.Data = nil
	if img.mapped {
		img.mapped = false
		return munmapFile(data)
	}
	return nil
}
