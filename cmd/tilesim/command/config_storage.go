package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilesim/internal/storage"
	"github.com/pixil98/go-tilesim/internal/world"
)

type StorageConfig struct {
	Maps AssetConfig[*world.Map] `json:"maps"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Maps.Validate("maps"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: path %q is not a directory", name, c.Path)
	}
	return nil
}

func (c *AssetConfig[T]) buildFileStore(name string) (*storage.FileStore[T], error) {
	st, err := storage.NewFileStore[T](c.Path)
	if err != nil {
		return nil, fmt.Errorf("creating %s store: %w", name, err)
	}
	return st, nil
}
