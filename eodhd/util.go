package eodhd

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string        // os.TempDir() if empty
	ttl  time.Duration // entries expire at the end of each ttl slot
	now  func() time.Time
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key embeds the current ttl slot, so that older entries are never read again.
	slot := c.clock().Truncate(c.ttl).Unix()
	key := fmt.Sprintf("%d %s %s", slot, req.Method, req.URL.String())
	key = fmt.Sprintf("eodhd-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		log.Debug().Str("path", req.URL.Path).Msg("eodhd cache hit")
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", resp.Request.Method).Str("host", resp.Request.URL.Host).Str("path", resp.Request.URL.Path).Str("status", resp.Status).Msg("eodhd request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Warn().Err(err).Msg("cache write err (ignored)")
	}
	return resp, nil
}

func (c *diskCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	// DumpResponse reads the body and replaces it by an in-memory copy.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	file := c.file(key)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}
	return os.WriteFile(file, content, 0644)
}

// newCachingClient returns an http.Client that uses a disk cache where entries expire after ttl.
// A zero ttl disables the cache.
func newCachingClient(dir string, ttl time.Duration) *http.Client {
	client := new(http.Client)
	if ttl <= 0 {
		return client
	}
	client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, ttl: ttl}
	return client
}
