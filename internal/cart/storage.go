package cart

import (
	"encoding/json"
	"os"
)

// Storage persists the cart mapping across sessions. The serialized form
// is a flat JSON object of product id → quantity, the same shape the
// storefront page keeps in local storage.
type Storage interface {
	Load() (map[string]int, error)
	Save(items map[string]int) error
}

// MemoryStorage keeps the cart for the lifetime of the process.
type MemoryStorage struct {
	items map[string]int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (map[string]int, error) {
	out := make(map[string]int, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStorage) Save(items map[string]int) error {
	cp := make(map[string]int, len(items))
	for k, v := range items {
		cp[k] = v
	}
	s.items = cp
	return nil
}

// FileStorage persists the cart as a JSON file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (map[string]int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int{}, nil
		}
		return nil, err
	}
	var items map[string]int
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStorage) Save(items map[string]int) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
