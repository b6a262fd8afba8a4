package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options selects the input files for one invocation. File is mutually
// exclusive with Dir and Recursive; the CLI enforces that before calling.
type Options struct {
	File      string
	Dir       string
	Recursive bool
}

// List enumerates candidate input files in sorted order. Hidden files and
// directories are skipped; stream selection happens later, after probing.
func List(opts Options) ([]string, error) {
	if opts.File != "" {
		info, err := os.Stat(opts.File)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", opts.File, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, use --directory", opts.File)
		}
		return []string{opts.File}, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	if opts.Recursive {
		return walk(dir)
	}
	return listDir(dir)
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || hidden(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func walk(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtrees are skipped, not fatal
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if hidden(entry.Name()) && path != dir {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
