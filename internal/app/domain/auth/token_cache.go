package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedDecoder memoises successful decodes. The web app decodes the session
// cookie on every request, so repeated credentials skip parsing.
// Failures are never cached.
type CachedDecoder struct {
	next  Decoder
	cache *cache.Cache
}

var _ Decoder = (*CachedDecoder)(nil)

func NewCachedDecoder(next Decoder, ttl time.Duration) *CachedDecoder {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedDecoder{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (d *CachedDecoder) Decode(raw string) (Identity, error) {
	key := cacheKey(raw)
	if v, ok := d.cache.Get(key); ok {
		if id, ok := v.(Identity); ok {
			return id, nil
		}
	}

	id, err := d.next.Decode(raw)
	if err != nil {
		return Identity{}, err
	}
	d.cache.Set(key, id, cache.DefaultExpiration)
	return id, nil
}

// Len reports the number of cached identities.
func (d *CachedDecoder) Len() int {
	return d.cache.ItemCount()
}

func cacheKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
