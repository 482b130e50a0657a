// Package scanner discovers annotated source files under a directory tree.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension is the file extension scanned when none is configured.
const DefaultExtension = ".wl"

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir    string
	extensions []string
}

// New creates a scanner rooted at rootDir. Without explicit extensions only
// DefaultExtension files are reported.
func New(rootDir string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = []string{DefaultExtension}
	}
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the tree and returns matching files in path order, keeping
// multi-file runs deterministic. Hidden directories below the root are not
// descended into, so caches and VCS metadata stay out of verification runs.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != s.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.isTargetFile(path) {
			return nil
		}
		files = append(files, FileInfo{
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Scanner) isTargetFile(path string) bool {
	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
