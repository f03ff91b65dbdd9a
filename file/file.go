package file

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type FileEvent struct {
	Filepath    string
	FileCreated bool
}

// SearchDir walks dir recursively and returns the paths of the regular files
// accepted by match.
func SearchDir(dir string, match func(filepath string) bool) ([]string, error) {
	var (
		entries []os.DirEntry
		err     error
	)
	if entries, err = os.ReadDir(dir); err != nil {
		return nil, errors.Wrapf(err, "search dir %s", dir)
	}
	result := make([]string, 0, 16)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			var paths []string
			if paths, err = SearchDir(path, match); err != nil {
				return nil, err
			}
			result = append(result, paths...)
		} else if match(path) {
			result = append(result, path)
		}
	}
	return result, nil
}
