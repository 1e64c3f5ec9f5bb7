package r2

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// fakeBucket is a minimal path-style S3 endpoint.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

type fakeObject struct {
	body        []byte
	contentType string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.objects[path] = fakeObject{body: b, contentType: r.Header.Get("Content-Type")}
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		obj, ok := f.objects[path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", obj.contentType)
		_, _ = w.Write(obj.body)
	case http.MethodDelete:
		delete(f.objects, path)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestGateway(t *testing.T) (*Gateway, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: make(map[string]fakeObject)}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	g, err := New(Config{Endpoint: srv.URL, AccessKeyID: "key", SecretAccessKey: "secret", Bucket: "dmm"})
	require.NoError(t, err)
	return g, bucket
}

func TestGateway_PutGetDelete(t *testing.T) {
	g, bucket := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, g.Put(ctx, "dpi/abc-123-frente.png", "image/png", strings.NewReader("png-bytes"), 9))
	require.Contains(t, bucket.objects, "dmm/dpi/abc-123-frente.png")

	doc, err := g.Get(ctx, "dpi/abc-123-frente.png")
	require.NoError(t, err)
	defer doc.Body.Close()
	body, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(body))
	require.Equal(t, "image/png", doc.ContentType)

	require.NoError(t, g.Delete(ctx, "dpi/abc-123-frente.png"))
	require.NotContains(t, bucket.objects, "dmm/dpi/abc-123-frente.png")
}

func TestGateway_GetMissingKey(t *testing.T) {
	g, _ := newTestGateway(t)

	_, err := g.Get(context.Background(), "dpi/missing.png")
	require.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestGateway_Ping(t *testing.T) {
	g, _ := newTestGateway(t)
	require.NoError(t, g.Ping(context.Background()))
}

func TestNew_RequiresEndpointAndBucket(t *testing.T) {
	_, err := New(Config{Bucket: "dmm"})
	require.Error(t, err)
}
