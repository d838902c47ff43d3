package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/GradeByte/internal/compressor"
	"github.com/jaywantadh/GradeByte/internal/metadata"
)

// cacheVersion changes whenever extraction output would differ for the same
// file, invalidating older entries.
const cacheVersion = "v1"

// PageCache stores encoded pages by content hash.
type PageCache interface {
	PutDocumentPages(hash string, pages []byte) error
	GetDocumentPages(hash string) ([]byte, error)
}

// CachedSource remembers the pages extracted from each distinct file
// content. Cache failures are logged and fall back to Next.
type CachedSource struct {
	Next  TextSource
	Cache PageCache
	Log   logrus.FieldLogger
}

func (c *CachedSource) Extract(path string) (*Document, error) {
	hash, err := hashFile(path)
	if err != nil {
		return nil, err
	}
	log := c.logger().WithFields(logrus.Fields{"path": path, "hash": hash[:12]})

	if pages, err := c.load(hash); err == nil {
		log.Debug("extraction cache hit")
		return &Document{Path: path, Pages: pages}, nil
	} else if !errors.Is(err, metadata.ErrNotFound) {
		log.Warnf("extraction cache unreadable: %v", err)
	}

	doc, err := c.Next.Extract(path)
	if err != nil {
		return nil, err
	}
	if err := c.store(hash, doc.Pages); err != nil {
		log.Warnf("failed to cache extracted pages: %v", err)
	}
	return doc, nil
}

func (c *CachedSource) load(hash string) ([]Page, error) {
	packed, err := c.Cache.GetDocumentPages(hash)
	if err != nil {
		return nil, err
	}
	raw, err := compressor.DecompressText(packed)
	if err != nil {
		return nil, err
	}
	var pages []Page
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("failed to decode cached pages: %w", err)
	}
	return pages, nil
}

func (c *CachedSource) store(hash string, pages []Page) error {
	raw, err := json.Marshal(pages)
	if err != nil {
		return err
	}
	packed, err := compressor.CompressText(raw)
	if err != nil {
		return err
	}
	return c.Cache.PutDocumentPages(hash, packed)
}

func (c *CachedSource) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

func hashFile(path string) (string, error) {
	if err := checkExists(path); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	io.WriteString(h, cacheVersion+strings.ToLower(filepath.Ext(path)))
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
