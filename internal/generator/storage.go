package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"

	"github.com/goliatone/go-articles/pkg/interfaces"
	"github.com/goliatone/go-articles/pkg/storage"
)

type writeCategory string

const (
	categoryPage    writeCategory = "page"
	categoryIndex   writeCategory = "index"
	categorySitemap writeCategory = "sitemap"
	categoryFeed    writeCategory = "feed"
	categoryRobots  writeCategory = "robots"
	categoryLegacy  writeCategory = "legacy"
	// categoryManifest tags the build manifest itself.
	categoryManifest writeCategory = "manifest"
)

// artifactWriter routes generator outputs through the storage provider,
// tagging each write with its category and checksum.
type artifactWriter struct {
	storage interfaces.StorageProvider
}

func newArtifactWriter(provider interfaces.StorageProvider) *artifactWriter {
	return &artifactWriter{storage: provider}
}

func (w *artifactWriter) write(ctx context.Context, outputPath string, content []byte, category writeCategory) (string, error) {
	if w.storage == nil {
		return "", errors.New("generator: storage provider is required")
	}
	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" {
		return "", errors.New("generator: write requires path")
	}

	if dir := path.Dir(outputPath); dir != "." && dir != "/" {
		if err := w.storage.EnsureDir(ctx, dir); err != nil {
			return "", err
		}
	}

	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	err := w.storage.WriteFile(ctx, storage.WriteRequest{
		Path:        outputPath,
		Content:     strings.NewReader(string(content)),
		Size:        int64(len(content)),
		Category:    string(category),
		ContentType: contentTypeFor(outputPath),
		Checksum:    checksum,
	})
	if err != nil {
		return "", err
	}
	return checksum, nil
}

func contentTypeFor(outputPath string) string {
	switch strings.ToLower(path.Ext(outputPath)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".xml":
		return "application/xml"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
