package transcribe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes successful transcripts for the process lifetime, keyed
// by a digest of the audio. Repeated dictation of the same clip skips
// the model call.
type Cache struct {
	inner Transcriber
	lru   *lru.Cache[string, string]
}

const defaultCacheSize = 256

// NewCache wraps inner with an LRU of the given size (<= 0 uses the
// default).
func NewCache(inner Transcriber, size int) (*Cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	l, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner, lru: l}, nil
}

func (c *Cache) Transcribe(ctx context.Context, audioB64, mimeType string) (string, error) {
	key := cacheKey(audioB64, mimeType)
	if text, ok := c.lru.Get(key); ok {
		return text, nil
	}
	text, err := c.inner.Transcribe(ctx, audioB64, mimeType)
	if err != nil {
		return "", err
	}
	c.lru.Add(key, text)
	return text, nil
}

func cacheKey(audioB64, mimeType string) string {
	h := sha256.New()
	h.Write([]byte(mimeType))
	h.Write([]byte{0})
	h.Write([]byte(audioB64))
	return hex.EncodeToString(h.Sum(nil))
}
