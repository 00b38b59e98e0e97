// Package input opens the report files consumed by the subcommands.
package input

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ErrNotFound is wrapped by Open when the report file does not exist.
var ErrNotFound = errors.New("file not found")

// Open opens the report at path. The caller closes the returned file.
func Open(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return f, nil
}
