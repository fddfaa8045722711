// Package fsutil provides file system lookup helpers for the addon tree.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ListDirectSubmodules returns the addon-relative paths of all module source
// files directly inside dir (non-recursive), lexically sorted for
// deterministic discovery. A missing directory yields an empty slice.
func ListDirectSubmodules(root, dir, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(filepath.Join(root, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		files = append(files, filepath.ToSlash(filepath.Join(dir, entry.Name())))
	}
	sort.Strings(files)
	return files, nil
}
