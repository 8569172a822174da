package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var ErrInvalidKey = errors.New("invalid storage key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// LocalStorage is a small file-backed key/value store. Every key lives in its
// own file; writes go through a temp file and a rename so a crash never leaves
// a half-written value behind.
type LocalStorage struct {
	basePath string
	mu       sync.Mutex
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (ls *LocalStorage) getPathFromKey(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	// Fan per-device keys out over subdirectories by their last two characters.
	shard := "_"
	if len(key) > 2 {
		shard = key[len(key)-2:]
	}
	return filepath.Join(ls.basePath, shard, key), nil
}

func (ls *LocalStorage) Get(key string) (string, bool, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.get(key)
}

func (ls *LocalStorage) get(key string) (string, bool, error) {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return string(data), true, nil
}

func (ls *LocalStorage) Set(key, value string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.set(key, value)
}

func (ls *LocalStorage) set(key, value string) error {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+key+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filePath)
}

// Increment adds delta to the integer stored under key and returns the new
// value. A missing or unparsable value counts as zero.
func (ls *LocalStorage) Increment(key string, delta int64) (int64, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	raw, _, err := ls.get(key)
	if err != nil {
		return 0, err
	}

	current := ParseCount(raw)
	next := current + delta
	if err := ls.set(key, strconv.FormatInt(next, 10)); err != nil {
		return 0, err
	}
	return next, nil
}

func (ls *LocalStorage) Delete(key string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// ParseCount reads a stored counter, treating anything that is not a
// non-negative integer prefix as zero.
func ParseCount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(raw[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
