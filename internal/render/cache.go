package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"storefront_ai_server/internal/page"
)

// Cache memoises Render results. A nil *Cache renders every call.
type Cache struct {
	entries *lru.Cache[string, Artifact]
}

func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, Artifact](size)
	if err != nil {
		return nil, fmt.Errorf("create render cache: %w", err)
	}
	return &Cache{entries: c}, nil
}

// Render returns the cached artifact for (p, preset), rendering on a miss.
// Failed renders are not cached.
func (c *Cache) Render(p *page.StructuredPage, preset page.Preset) (Artifact, error) {
	if c == nil || p == nil {
		return Render(p, preset)
	}
	key, err := cacheKey(p, preset)
	if err != nil {
		return Render(p, preset)
	}
	if a, ok := c.entries.Get(key); ok {
		return a, nil
	}
	a, err := Render(p, preset)
	if err != nil {
		return Artifact{}, err
	}
	c.entries.Add(key, a)
	return a, nil
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func cacheKey(p *page.StructuredPage, preset page.Preset) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(b)
	h.Write([]byte{0})
	h.Write([]byte(ThemeName(preset)))
	return hex.EncodeToString(h.Sum(nil)), nil
}
