// Package gtp reads and writes GTP tape images.
//
// A GTP file is a chain of blocks, each a 5 byte header followed by the raw
// block bytes:
//
//	0    block type (0x00 = standard)
//	1-2  block size, little-endian
//	3-4  reserved, 0x00 0x00
package gtp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
)

// HeaderSize is the size of a block header.
const HeaderSize = 5

// BlockStandard is the only block type produced.
const BlockStandard byte = 0x00

var (
	// ErrBlockTooLarge is returned for payloads that do not fit the size field.
	ErrBlockTooLarge = errors.New("gtp: block too large")

	// ErrShortBlock is returned when a block is cut before its declared size.
	ErrShortBlock = errors.New("gtp: short block")

	// ErrExists is returned by CreateFile when the output is already there.
	ErrExists = errors.New("gtp: output exists")
)

// Header is a block header.
type Header struct {
	Type byte
	Size uint16
}

// Marshal returns the 5 header bytes.
func (h Header) Marshal() [HeaderSize]byte {
	var b [HeaderSize]byte
	b[0] = h.Type
	binary.LittleEndian.PutUint16(b[1:3], h.Size)
	return b
}

// Write writes one standard block.
func Write(w io.Writer, payload []byte) error {
	if len(payload) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrBlockTooLarge, len(payload))
	}
	header := Header{Type: BlockStandard, Size: uint16(len(payload))}.Marshal()
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// WriteFile writes one standard block to path, replacing any existing file.
// The file only appears once it is complete.
func WriteFile(path string, payload []byte) error {
	return writeFile(path, payload, os.Rename)
}

// CreateFile is like WriteFile but fails with ErrExists instead of replacing
// an existing file.
func CreateFile(path string, payload []byte) error {
	return writeFile(path, payload, func(tmp, path string) error {
		if err := os.Link(tmp, path); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrExists, path)
			}
			return err
		}
		return os.Remove(tmp)
	})
}

func writeFile(path string, payload []byte, commit func(tmp, path string) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err := Write(f, payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return commit(tmp, path)
}

// Read reads one block. It returns io.EOF when r is exhausted before a header.
func Read(r io.Reader) (Header, []byte, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Header{}, nil, fmt.Errorf("%w: header", ErrShortBlock)
		}
		return Header{}, nil, err
	}
	h := Header{Type: b[0], Size: binary.LittleEndian.Uint16(b[1:3])}

	payload := make([]byte, h.Size)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return h, nil, fmt.Errorf("%w: want %d bytes", ErrShortBlock, h.Size)
		}
		return h, nil, err
	}
	return h, payload, nil
}
