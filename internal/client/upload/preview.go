package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Preview is the local, ephemeral handle to a selected image: a temp-file
// copy the view can show immediately, before any network round trip. Every
// Preview must be released when superseded or when the widget is torn down;
// an unreleased handle is a leak.
type Preview struct {
	Name string
	Size int64
	Path string

	mu       sync.Mutex
	released bool
}

// NewPreview copies the file at src into a temp file and returns the handle.
func NewPreview(src string) (*Preview, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp("", "shopdeck-preview-*"+filepath.Ext(src))
	if err != nil {
		return nil, fmt.Errorf("failed to create preview: %w", err)
	}

	size, err := io.Copy(tmp, in)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to copy preview: %w", err)
	}

	return &Preview{Name: filepath.Base(src), Size: size, Path: tmp.Name()}, nil
}

// Release removes the temp copy. Idempotent.
func (p *Preview) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.released = true
	_ = os.Remove(p.Path)
}

// Released reports whether the handle has been released.
func (p *Preview) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}
