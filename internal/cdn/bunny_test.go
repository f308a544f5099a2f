package cdn

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	return &Client{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		client:     http.DefaultClient,
		storageURL: serverURL + "/zone",
		pullURL:    "https://zone.b-cdn.net",
		apiKey:     "access-key",
	}
}

func TestUpload(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("AccessKey")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := testClient(server.URL)
	url, err := c.Upload(
		context.Background(), strings.NewReader("pdf bytes"), "ebooks/akari-vol1.pdf",
	)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/zone/ebooks/akari-vol1.pdf", gotPath)
	assert.Equal(t, "access-key", gotKey)
	assert.Equal(t, "pdf bytes", gotBody)
	assert.Equal(t, "https://zone.b-cdn.net/ebooks/akari-vol1.pdf", url)
}

func TestUploadHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Upload(
		context.Background(), strings.NewReader("x"), "f.bin",
	)
	assert.ErrorContains(t, err, "HTTP 401")
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zone/ebooks/", r.URL.Path)
		json.NewEncoder(w).Encode([]FileInfo{
			{ObjectName: "akari-vol1.pdf", Length: 1024},
			{ObjectName: "covers", IsDirectory: true},
		})
	}))
	defer server.Close()

	files, err := testClient(server.URL).List(context.Background(), "ebooks")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "akari-vol1.pdf", files[0].ObjectName)
	assert.True(t, files[1].IsDirectory)
}

func TestDelete(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer server.Close()

	require.NoError(t, testClient(server.URL).Delete(context.Background(), "ebooks/old.pdf"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}
