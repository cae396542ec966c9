package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

// DefaultCacheSize is the number of rendered pages a Cache keeps.
const DefaultCacheSize = 64

// Cache memoizes rendered pages by document content. Rendering is pure, so
// two documents with identical JSON share a page.
type Cache struct {
	r     *Renderer
	pages *lru.Cache[string, string]
}

// NewCache wraps r with an LRU of the given size.
func NewCache(r *Renderer, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	pages, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cache{r: r, pages: pages}, nil
}

// Render returns the cached page for doc, rendering on a miss.
func (c *Cache) Render(doc *site.Document) string {
	key, ok := cacheKey(doc)
	if !ok {
		return c.r.Render(doc)
	}
	if page, hit := c.pages.Get(key); hit {
		return page
	}
	page := c.r.Render(doc)
	c.pages.Add(key, page)
	return page
}

// Len reports the number of cached pages.
func (c *Cache) Len() int { return c.pages.Len() }

func cacheKey(doc *site.Document) (string, bool) {
	if doc == nil {
		return "", false
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), true
}
