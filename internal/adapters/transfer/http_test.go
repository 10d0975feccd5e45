package transfer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotBody []byte
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewHTTPTransfer(time.Second)
	require.NoError(t, tr.Upload(context.Background(), srv.URL+"/key?X-Amz-Signature=abc", "application/pdf", []byte("%PDF-1.3")))
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, []byte("%PDF-1.3"), gotBody)
}

func TestUpload_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewHTTPTransfer(time.Second).Upload(context.Background(), srv.URL, "application/pdf", []byte("x"))
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("file-bytes"))
	}))
	defer srv.Close()

	tr := NewHTTPTransfer(time.Second)
	body, err := tr.Download(context.Background(), srv.URL+"/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "file-bytes", string(body))

	_, err = tr.Download(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestDownload_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewHTTPTransfer(20*time.Millisecond).Download(context.Background(), srv.URL)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
