package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wizonweb/wizon-server/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "test:blogs", MaxBodyBytes: 1 << 10}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"success":true}`))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || string(body) != `{"success":true}` || !reflect.DeepEqual(gotHdr, hdr) {
		t.Errorf("decode = %d %v %q %v", status, gotHdr, body, ok)
	}

	if _, _, _, ok := decodePayload([]byte{0, 0, 0}); ok {
		t.Error("short payload decoded")
	}
	if _, _, _, ok := decodePayload(bs[:10]); ok {
		t.Error("truncated header decoded")
	}
}

func TestCaptureWriterOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("def"))
	if !cw.overflow || cw.buf.Len() != 0 {
		t.Errorf("overflow=%v buffered=%d", cw.overflow, cw.buf.Len())
	}
	if rec.Body.String() != "abcdef" {
		t.Errorf("client saw %q", rec.Body.String())
	}
}

func TestCacheKeyIgnoresIDCase(t *testing.T) {
	e := echo.New()
	bc := NewBlogCache(testCacheConfig(), nil)
	keyFor := func(id string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/blogs/"+id, nil), httptest.NewRecorder())
		c.SetPath("/api/blogs/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return bc.key(c)
	}
	if keyFor("ABC") != keyFor("abc") {
		t.Error("keys differ by id case")
	}
	if keyFor("abc") == keyFor("abd") {
		t.Error("different ids share a key")
	}
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	for name, bc := range map[string]*BlogCache{
		"nil client": NewBlogCache(testCacheConfig(), nil),
		"nil cache":  nil,
	} {
		e := echo.New()
		calls := 0
		h := bc.Middleware()(func(c echo.Context) error {
			calls++
			return c.String(http.StatusOK, "fresh")
		})
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/blogs", nil), rec)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if calls != 1 || rec.Header().Get("X-Cache") != "" {
			t.Errorf("%s: calls=%d x-cache=%q", name, calls, rec.Header().Get("X-Cache"))
		}
		if err := bc.Invalidate(context.Background()); err != nil {
			t.Errorf("%s: invalidate: %v", name, err)
		}
	}
}

func TestCacheFailsOpenWhenRedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	bc := NewBlogCache(testCacheConfig(), rdb)

	e := echo.New()
	h := bc.Middleware()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/blogs", nil), rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("status=%d x-cache=%q", rec.Code, rec.Header().Get("X-Cache"))
	}
	if err := bc.Invalidate(context.Background()); err == nil {
		t.Error("expected invalidate to report the unreachable server")
	}
}

func newMiniCache(t *testing.T) (*BlogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewBlogCache(testCacheConfig(), rdb), mr
}

func serveBlogs(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	c.SetPath("/api/blogs")
	if err := h(c); err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	return rec
}

func TestCacheStoresAndServesHit(t *testing.T) {
	bc, mr := newMiniCache(t)
	calls := 0
	h := bc.Middleware()(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true, "n": calls})
	})

	first := serveBlogs(t, h, "/api/blogs?page=1")
	if first.Header().Get("X-Cache") != "MISS" || len(mr.Keys()) != 1 {
		t.Fatalf("first x-cache=%q keys=%v", first.Header().Get("X-Cache"), mr.Keys())
	}
	if ttl := mr.TTL(mr.Keys()[0]); ttl != time.Minute {
		t.Errorf("ttl = %v", ttl)
	}

	second := serveBlogs(t, h, "/api/blogs?page=1")
	if calls != 1 || second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("calls=%d x-cache=%q", calls, second.Header().Get("X-Cache"))
	}
	if second.Body.String() != first.Body.String() || second.Code != http.StatusOK {
		t.Errorf("hit = %d %q, want %q", second.Code, second.Body.String(), first.Body.String())
	}
	if ct := second.Header().Get(echo.HeaderContentType); ct != echo.MIMEApplicationJSON {
		t.Errorf("content-type = %q", ct)
	}

	serveBlogs(t, h, "/api/blogs?page=2")
	if calls != 2 || len(mr.Keys()) != 2 {
		t.Errorf("other query: calls=%d keys=%v", calls, mr.Keys())
	}
}

func TestCacheSkipsErrorResponses(t *testing.T) {
	bc, mr := newMiniCache(t)
	h := bc.Middleware()(func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false})
	})
	serveBlogs(t, h, "/api/blogs")
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("stored %v", keys)
	}
}

func TestCacheInvalidateSweepsPrefix(t *testing.T) {
	bc, mr := newMiniCache(t)
	h := bc.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "list")
	})
	serveBlogs(t, h, "/api/blogs?page=1")
	serveBlogs(t, h, "/api/blogs?page=2")
	if err := mr.Set("sessions:abc", "keep"); err != nil {
		t.Fatal(err)
	}

	if err := bc.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if keys := mr.Keys(); !reflect.DeepEqual(keys, []string{"sessions:abc"}) {
		t.Errorf("keys after invalidate = %v", keys)
	}
	if rec := serveBlogs(t, h, "/api/blogs?page=1"); rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("x-cache after invalidate = %q", rec.Header().Get("X-Cache"))
	}
}

func TestCacheDropsResponseReadBeforeWrite(t *testing.T) {
	bc, mr := newMiniCache(t)
	calls := 0
	h := bc.Middleware()(func(c echo.Context) error {
		calls++
		if calls == 1 {
			// a write lands and sweeps while this read is still in flight
			if err := bc.Invalidate(context.Background()); err != nil {
				return err
			}
		}
		return c.String(http.StatusOK, "old")
	})

	if rec := serveBlogs(t, h, "/api/blogs"); rec.Body.String() != "old" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("response read before the write was cached: %v", keys)
	}

	serveBlogs(t, h, "/api/blogs")
	if calls != 2 || len(mr.Keys()) != 1 {
		t.Errorf("calls=%d keys=%v", calls, mr.Keys())
	}
}
