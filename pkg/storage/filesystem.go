package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// NewFilesystem returns a Provider that writes artifacts beneath root,
// creating parent directories as needed. Writes outside root are rejected.
func NewFilesystem(root string) Provider {
	return &filesystem{root: filepath.Clean(root)}
}

type filesystem struct {
	root string
}

func (f *filesystem) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("storage: ensure dir %s: %w", target, err)
	}
	return nil
}

func (f *filesystem) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return fmt.Errorf("storage: write %s requires content", req.Path)
	}
	target, err := f.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("storage: ensure parent of %s: %w", target, err)
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", target, err)
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		file.Close()
		return fmt.Errorf("storage: write %s: %w", target, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", target, err)
	}
	return nil
}

func (f *filesystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", target, err)
	}
	return data, nil
}

func (f *filesystem) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("storage: remove %s: %w", target, err)
	}
	return nil
}

func (f *filesystem) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimSpace(path)))
	if clean == "" || clean == "." {
		return f.root, nil
	}
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("storage: path %q escapes output root", path)
	}
	return filepath.Join(f.root, clean), nil
}
