package huffcode

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DictionaryCache keeps recently parsed dictionaries, keyed by a fingerprint
// of their text, so coded streams sharing a dictionary file parse it once.
//
// DictionaryCache is safe for concurrent use.
type DictionaryCache struct {
	cfg   Config
	cache *lru.Cache[uint64, cachedDictionary]
}

type cachedDictionary struct {
	text string
	dict *Dictionary
}

// NewDictionaryCache creates a cache holding at most size dictionaries, all
// parsed with opts. It fails if opts describe conventions that cannot be
// read back.
func NewDictionaryCache(size int, opts ...Option) (*DictionaryCache, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cache, err := lru.New[uint64, cachedDictionary](size)
	if err != nil {
		return nil, err
	}
	return &DictionaryCache{cfg: cfg, cache: cache}, nil
}

// Parse returns the dictionary for text, parsing it on a miss. Texts that
// fail to parse are not cached.
func (c *DictionaryCache) Parse(text string) (*Dictionary, error) {
	key := xxhash.Sum64String(text)
	if cached, ok := c.cache.Get(key); ok && cached.text == text {
		return cached.dict, nil
	}

	dict, err := parseDictionary(text, c.cfg)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, cachedDictionary{text: text, dict: dict})
	return dict, nil
}

// Load reads r to the end and returns its dictionary.
func (c *DictionaryCache) Load(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return c.Parse(string(data))
}

// LoadFile returns the dictionary stored at path.
func (c *DictionaryCache) LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Parse(string(data))
}

// Len returns the number of cached dictionaries.
func (c *DictionaryCache) Len() int {
	return c.cache.Len()
}
