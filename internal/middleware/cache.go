package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wizonweb/wizon-server/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
// Once more than limit bytes have been written the capture is abandoned.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int64
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflow {
		if cw.limit > 0 && int64(cw.buf.Len()+len(b)) > cw.limit {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// BlogCache caches successful public blog GET responses in Redis.  Keys live
// under the configured prefix so writes can sweep them with Invalidate.  A
// nil client or a disabled config turns both the middleware and Invalidate
// into no-ops.
type BlogCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
	// gen advances on every Invalidate; a response read before the bump is
	// never left in the cache.
	gen atomic.Uint64
}

// NewBlogCache returns a cache bound to rdb.  rdb may be nil.
func NewBlogCache(cfg config.CacheConfig, rdb *redis.Client) *BlogCache {
	return &BlogCache{cfg: cfg, rdb: rdb}
}

func (bc *BlogCache) active() bool {
	return bc != nil && bc.cfg.Enabled && bc.rdb != nil
}

// key builds a stable cache key from route pattern, path params and query.
func (bc *BlogCache) key(c echo.Context) string {
	parts := []string{"route", c.Path()}
	for _, name := range c.ParamNames() {
		parts = append(parts, name, strings.ToLower(c.Param(name))) // ids are case-insensitive uuids
	}
	parts = append(parts, "q", c.Request().URL.RawQuery)
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", bc.cfg.Prefix, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// Middleware serves cached GET responses and stores 200 responses on miss.
// Redis errors fall through to the handler.
func (bc *BlogCache) Middleware() echo.MiddlewareFunc {
	if !bc.active() {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := bc.key(c)

			if bs, err := bc.rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					_, _ = c.Response().Write(body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(bc.cfg.MaxBodyBytes)}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			gen := bc.gen.Load()
			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.overflow || bc.gen.Load() != gen {
				return nil
			}

			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
			if err != nil {
				return nil
			}
			// detached from the request so a client hang-up does not drop the write
			storeCtx := context.WithoutCancel(ctx)
			if err := bc.rdb.SetEx(storeCtx, key, payload, bc.cfg.TTL).Err(); err != nil {
				slog.Warn("blog cache store failed", "key", key, "error", err)
				return nil
			}
			// an Invalidate that raced the store may have swept before SetEx landed
			if bc.gen.Load() != gen {
				if err := bc.rdb.Del(storeCtx, key).Err(); err != nil {
					slog.Warn("blog cache stale entry not removed", "key", key, "error", err)
				}
			}
			return nil
		}
	}
}

// Invalidate deletes every key under the cache prefix.  Responses still being
// read when it is called are not stored.
func (bc *BlogCache) Invalidate(ctx context.Context) error {
	if !bc.active() {
		return nil
	}
	bc.gen.Add(1)
	iter := bc.rdb.Scan(ctx, 0, bc.cfg.Prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := bc.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete cache keys: %w", err)
	}
	return nil
}
