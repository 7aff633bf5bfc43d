package cache

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rulekit/rulekit/internal/domain"
)

type entry struct {
	content string
	stat    domain.FileStat
}

// Store is a bounded read-through content cache implementing
// domain.ContentStore. A cached entry is reused only while the file's
// modification time has not advanced past the cached read.
type Store struct {
	entries *lru.Cache[string, entry]
}

// New creates a Store holding at most size entries.
func New(size int) (*Store, error) {
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Store{entries: entries}, nil
}

// Read returns the file content, from cache when still fresh.
func (s *Store) Read(path string) (string, domain.FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", domain.FileStat{}, err
	}

	if e, ok := s.entries.Get(path); ok && !info.ModTime().After(e.stat.ModTime) {
		return e.content, e.stat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.FileStat{}, err
	}

	e := entry{
		content: string(data),
		stat:    domain.FileStat{Size: info.Size(), ModTime: info.ModTime()},
	}
	s.entries.Add(path, e)
	return e.content, e.stat, nil
}

// Invalidate drops the cached entry for path, if any.
func (s *Store) Invalidate(path string) {
	s.entries.Remove(path)
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	return s.entries.Len()
}
