package provider

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const DefaultCacheDir = "./f1_cache"

// Cache is a flat directory of JSON files, one per fetched fastest lap.
type Cache struct {
	dir string
}

func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(c.filePath(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

func (c *Cache) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.filePath(key), data, 0644)
}

func (c *Cache) filePath(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s.json", key))
}
