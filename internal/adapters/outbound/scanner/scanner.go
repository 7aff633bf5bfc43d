package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".rulekit":     true,
}

// FileScanner implements domain.RuleScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns every file under root whose name matches pattern. Each
// matching file appears exactly once.
func (s *FileScanner) Scan(root, pattern string, excludePaths []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	seen := make(map[string]bool)
	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		match, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if match && !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
