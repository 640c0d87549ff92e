package flight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, APIKey: "secret", TimeoutSeconds: 2})
}

func TestClient_Registration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights/UA123", r.URL.Path)
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("date"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"registration":"N12345"},{"registration":"N67890"}]`))
	}))
	defer srv.Close()

	reg, err := testClient(srv.URL).Registration(context.Background(), "UA123", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "N12345", reg, "first candidate wins on codeshare flights")
}

func TestClient_NoAssignment(t *testing.T) {
	t.Run("EmptyArray", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Registration(context.Background(), "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrNoAssignment)
	})

	t.Run("EmptyRegistration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"registration":"  "}]`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Registration(context.Background(), "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrNoAssignment)
	})

	t.Run("HTTP404", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Registration(context.Background(), "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrNoAssignment)
	})
}

func TestClient_Unavailable(t *testing.T) {
	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Registration(context.Background(), "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Registration(context.Background(), "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("ConnectionRefused", func(t *testing.T) {
		_, err := testClient("http://127.0.0.1:1").Registration(context.Background(), "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("ContextTimeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := testClient(srv.URL).Registration(ctx, "UA123", "2026-08-30")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
