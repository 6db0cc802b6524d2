// Package stream opens trace inputs and outputs, handling compression.
//
// Inputs are decompressed based on their magic bytes, outputs are compressed
// based on the file extension.
package stream

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/errs/v2"
)

// Stdio is the name that selects standard input or output.
const Stdio = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens path for reading, or stdin when path is "-".
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == Stdio || path == "" {
		return NewReader(io.NopCloser(stdin))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errs.Errorf("failed to open %q: %w", path, err)
	}
	rc, err := NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, errs.Errorf("failed to read %q: %w", path, err)
	}
	return rc, nil
}

// NewReader returns a reader that decompresses gzip or zstd data and
// passes anything else through. Closing it closes rc.
func NewReader(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, errs.Wrap(err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		return &readCloser{Reader: zr, close: []func() error{zr.Close, rc.Close}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		return &readCloser{Reader: zr, close: []func() error{closeZstd(zr), rc.Close}}, nil
	default:
		return &readCloser{Reader: br, close: []func() error{rc.Close}}, nil
	}
}

// Create opens path for writing, or stdout when path is "-".
//
// Paths ending in ".gz" are gzip compressed and paths ending in ".zst" are
// zstd compressed.
func Create(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == Stdio || path == "" {
		return &writeCloser{Writer: stdout}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, errs.Errorf("failed to create %q: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := gzip.NewWriter(file)
		return &writeCloser{Writer: zw, close: []func() error{zw.Close, file.Close}}, nil
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(file)
		if err != nil {
			_ = file.Close()
			return nil, errs.Wrap(err)
		}
		return &writeCloser{Writer: zw, close: []func() error{zw.Close, file.Close}}, nil
	default:
		bw := bufio.NewWriter(file)
		return &writeCloser{Writer: bw, close: []func() error{bw.Flush, file.Close}}, nil
	}
}

func closeZstd(dec *zstd.Decoder) func() error {
	return func() error {
		dec.Close()
		return nil
	}
}

type readCloser struct {
	io.Reader
	close []func() error
}

func (rc *readCloser) Close() error { return closeAll(rc.close) }

type writeCloser struct {
	io.Writer
	close []func() error
}

func (wc *writeCloser) Close() error { return closeAll(wc.close) }

// closeAll runs every close in order and combines the failures.
func closeAll(fns []func() error) error {
	var group errs.Group
	for _, fn := range fns {
		group.Add(fn())
	}
	return group.Err()
}
