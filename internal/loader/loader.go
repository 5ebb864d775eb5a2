// Package loader implements the file-based vm.ROMSource used by the CLI:
// a ROM is just the raw bytes of a file on disk, read once at load time.
package loader

import (
	"fmt"
	"os"

	"github.com/dice-systems/botvm/vm"
)

// FileROM adapts an on-disk ROM image to vm.ROMSource.
type FileROM struct {
	data []byte
	pos  int
}

// Open reads path fully into memory and returns a FileROM over its bytes.
func Open(path string) (*FileROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot open file: %s: %w", path, err)
	}
	return &FileROM{data: data}, nil
}

// Size implements vm.ROMSource.
func (f *FileROM) Size() uint32 { return uint32(len(f.data)) }

// ReadByte implements vm.ROMSource.
func (f *FileROM) ReadByte() byte {
	b := f.data[f.pos]
	f.pos++
	return b
}

// Load is a convenience wrapper that opens path and loads it directly into
// m.
func Load(m *vm.VM, path string) error {
	src, err := Open(path)
	if err != nil {
		return err
	}
	m.Load(src)
	return nil
}
