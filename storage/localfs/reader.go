// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package localfs reads uploaded objects from a local directory tree.
// Each container is a sub-directory of the root and keys are slash-separated
// paths inside it.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/poiesic/reviewpipe/storage"
)

// Reader implements storage.ObjectReader over a directory.
type Reader struct {
	root string
}

var _ storage.ObjectReader = (*Reader)(nil)

// NewReader creates a Reader rooted at dir. The directory must exist.
func NewReader(dir string) (*Reader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Reader{root: dir}, nil
}

// Root returns the directory the reader serves.
func (r *Reader) Root() string {
	return r.root
}

// GetObject reads root/container/key.
func (r *Reader) GetObject(ctx context.Context, container, key string) ([]byte, error) {
	path, err := r.resolve(container, key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, container, key)
		}
		return nil, err
	}
	return data, nil
}

// resolve maps container and key to a path, refusing anything that would
// escape the root.
func (r *Reader) resolve(container, key string) (string, error) {
	if container == "" || !filepath.IsLocal(container) {
		return "", fmt.Errorf("%w: container %q", storage.ErrInvalidKey, container)
	}
	rel := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	return filepath.Join(r.root, container, rel), nil
}
