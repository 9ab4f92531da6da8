//go:build !linux && !darwin

package mmfile

import "golang.org/x/exp/mmap"

// Open maps the file at path into memory.
func Open(path string) (File, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}
