package platform

import (
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore keeps values as files under a base directory.
type DiskStore struct {
	d *diskv.Diskv
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore opens (creating on first write) a store rooted at basePath.
func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
		FilePerm:     0600,
		PathPerm:     0700,
	})}
}

// Get returns the value stored under key.
func (s *DiskStore) Get(key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(string(val)), true, nil
}

// Set writes value under key.
func (s *DiskStore) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}

// Delete removes key; a missing key is not an error.
func (s *DiskStore) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}
