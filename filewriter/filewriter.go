// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package filewriter safely writes files.
package filewriter

import (
	"io"
	"os"
	"path/filepath"
)

// FileWriter writes to a temp file and later atomically renames it.
// If a write error occurs, it is saved internally and future writes become no-ops.
type FileWriter struct {
	p    string   // target filename
	f    *os.File // temp file
	werr error    // first error encountered while writing
}

// New returns a new FileWriter that will write to the supplied path.
func New(p string) (*FileWriter, error) {
	f, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*")
	if err != nil {
		return nil, err
	}
	return &FileWriter{p: p, f: f}, nil
}

// Write implements io.Writer.
// Once a write has failed, Write returns the original error without writing anything.
func (fw *FileWriter) Write(b []byte) (int, error) {
	if fw.werr != nil {
		return 0, fw.werr
	}
	var n int
	n, fw.werr = fw.f.Write(b)
	return n, fw.werr
}

// Fail records err as a write error so that Close discards the temp file.
// It's used when a caller's own serialization fails partway through.
func (fw *FileWriter) Fail(err error) {
	if fw.werr == nil {
		fw.werr = err
	}
}

// Close renames the temp file to the path originally supplied to New.
// If a write error occurred earlier, it is returned and no other action is taken.
func (fw *FileWriter) Close() error {
	defer os.Remove(fw.f.Name()) // no-op on success
	cerr := fw.f.Close()
	if fw.werr != nil {
		return fw.werr
	}
	if cerr != nil {
		return cerr
	}
	if err := os.Chmod(fw.f.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(fw.f.Name(), fw.p)
}

// WriteFile atomically writes the file at p using fn.
// If fn returns an error, p is left untouched.
func WriteFile(p string, fn func(w io.Writer) error) error {
	fw, err := New(p)
	if err != nil {
		return err
	}
	if err := fn(fw); err != nil {
		fw.Fail(err)
	}
	return fw.Close()
}
