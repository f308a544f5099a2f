// Package cdn uploads rendered ebooks to a Bunny storage zone so the
// website can serve them from the pull zone.
package cdn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jeromeheuze/puzzle-generator/internal/config"
)

type Client struct {
	logger     *slog.Logger
	client     *http.Client
	storageURL string
	pullURL    string
	apiKey     string
}

func NewClient(logger *slog.Logger, cfg *config.CDN) *Client {
	return &Client{
		logger:     logger,
		client:     &http.Client{Timeout: 60 * time.Second},
		storageURL: cfg.StorageURL(),
		pullURL:    cfg.PullURL(),
		apiKey:     cfg.APIKey,
	}
}

// FileInfo is the subset of Bunny's listing entries we care about.
type FileInfo struct {
	ObjectName  string `json:"ObjectName"`
	Length      int64  `json:"Length"`
	IsDirectory bool   `json:"IsDirectory"`
}

// PublicURL returns where an uploaded file is served from.
func (c *Client) PublicURL(remotePath string) string {
	return c.pullURL + "/" + strings.TrimPrefix(remotePath, "/")
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("AccessKey", c.apiKey)
	return c.client.Do(req)
}

// Upload PUTs the reader's content at remotePath and returns the public
// URL it will be served from.
func (c *Client) Upload(ctx context.Context, body io.Reader, remotePath string) (string, error) {
	url := c.storageURL + "/" + strings.TrimPrefix(remotePath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed: HTTP %d: %s", resp.StatusCode, msg)
	}

	publicURL := c.PublicURL(remotePath)
	c.logger.Info("uploaded file", "path", remotePath, "url", publicURL)
	return publicURL, nil
}

// UploadFile uploads a local file, keeping its name unless remotePath
// says otherwise.
func (c *Client) UploadFile(ctx context.Context, localPath, remotePath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("unable to open %s: %w", localPath, err)
	}
	defer f.Close()
	return c.Upload(ctx, f, remotePath)
}

// List returns the entries under a storage directory.
func (c *Client) List(ctx context.Context, dir string) ([]FileInfo, error) {
	url := c.storageURL + "/" + strings.TrimPrefix(dir, "/")
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list failed: HTTP %d", resp.StatusCode)
	}

	var files []FileInfo
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("malformed listing: %w", err)
	}
	return files, nil
}

func (c *Client) Delete(ctx context.Context, remotePath string) error {
	url := c.storageURL + "/" + strings.TrimPrefix(remotePath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete failed: HTTP %d", resp.StatusCode)
	}
	return nil
}
