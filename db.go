package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"tabroom-plus/storage"
)

// openStorage opens the SQLite store at path, creating its directory.
func openStorage(ctx context.Context, path string) (*storage.SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "create database directory %s", dir)
		}
	}
	return storage.Open(ctx, path)
}
