package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/govdoc"
	govhttp "github.com/fwojciec/govdoc/http"
	"github.com/fwojciec/govdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Downloader implements govdoc.Downloader
var _ govdoc.Downloader = (*govhttp.Downloader)(nil)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("returns body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		dl := govhttp.NewDownloader()

		body, err := dl.Download(context.Background(), server.URL+"/notice.pdf")

		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), body)
	})

	t.Run("sends descriptive user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		_, err := govhttp.NewDownloader().Download(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, govhttp.DefaultUserAgent, got)
	})

	t.Run("returns EFETCH for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := govhttp.NewDownloader().Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
		assert.Contains(t, govdoc.ErrorMessage(err), "404")
	})

	t.Run("returns EFETCH on timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		dl := govhttp.NewDownloader(govhttp.WithTimeout(20 * time.Millisecond))

		_, err := dl.Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
		assert.Contains(t, govdoc.ErrorMessage(err), "timeout")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := govhttp.NewDownloader().Download(ctx, server.URL)

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
	})

	t.Run("rejects bodies over the size limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}))
		defer server.Close()

		dl := govhttp.NewDownloader(govhttp.WithMaxBytes(32))

		_, err := dl.Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
		assert.Contains(t, govdoc.ErrorMessage(err), "exceeds")
	})

	t.Run("refuses bodies without the expected signature", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>WAF challenge</html>"))
		}))
		defer server.Close()

		dl := govhttp.NewDownloader(govhttp.WithSignature(govhttp.PDFSignature))

		_, err := dl.Download(context.Background(), server.URL+"/gazette.pdf")

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
		assert.Contains(t, govdoc.ErrorMessage(err), `did not return a %PDF document (Content-Type "text/html")`)
	})

	t.Run("accepts a signature after leading bytes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("\r\n\r\n%PDF-1.7\n"))
		}))
		defer server.Close()

		dl := govhttp.NewDownloader(govhttp.WithSignature(govhttp.PDFSignature))

		body, err := dl.Download(context.Background(), server.URL+"/gazette.pdf")

		require.NoError(t, err)
		assert.Equal(t, []byte("\r\n\r\n%PDF-1.7\n"), body)
	})

	t.Run("returns EFETCH for non-existent host", func(t *testing.T) {
		t.Parallel()

		dl := govhttp.NewDownloader(govhttp.WithTimeout(100 * time.Millisecond))

		_, err := dl.Download(context.Background(), "http://non-existent-host.invalid/file.pdf")

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
	})
}

func TestDownloader_Redirects(t *testing.T) {
	t.Parallel()

	// Authorizes only paths under /ok so a single test server can play both
	// an authorized and an unauthorized host.
	authorizer := &mock.Authorizer{
		AuthorizeFn: func(rawURL string) (govdoc.Decision, error) {
			return govdoc.Decision{Host: "127.0.0.1", Authorized: strings.Contains(rawURL, "/ok")}, nil
		},
	}

	newServer := func() *httptest.Server {
		mux := http.NewServeMux()
		mux.HandleFunc("/ok/start", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/ok/final", http.StatusFound)
		})
		mux.HandleFunc("/ok/escape", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/elsewhere", http.StatusFound)
		})
		mux.HandleFunc("/ok/final", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("final"))
		})
		mux.HandleFunc("/elsewhere", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("leaked"))
		})
		return httptest.NewServer(mux)
	}

	t.Run("follows redirects within authorized domains", func(t *testing.T) {
		t.Parallel()

		server := newServer()
		defer server.Close()
		dl := govhttp.NewDownloader(govhttp.WithRedirectAuthorizer(authorizer))

		body, err := dl.Download(context.Background(), server.URL+"/ok/start")

		require.NoError(t, err)
		assert.Equal(t, []byte("final"), body)
	})

	t.Run("refuses redirects to unauthorized hosts", func(t *testing.T) {
		t.Parallel()

		server := newServer()
		defer server.Close()
		dl := govhttp.NewDownloader(govhttp.WithRedirectAuthorizer(authorizer))

		_, err := dl.Download(context.Background(), server.URL+"/ok/escape")

		require.Error(t, err)
		assert.Equal(t, govdoc.EFETCH, govdoc.ErrorCode(err))
		assert.Contains(t, govdoc.ErrorMessage(err), "unauthorized")
	})
}
