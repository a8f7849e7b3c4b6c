package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// GCSStore talks to the Google Cloud Storage JSON API over plain HTTP.
// Objects are named <key>.json inside a single bucket.
type GCSStore struct {
	baseURL    string
	bucket     string
	token      string
	httpClient *http.Client
}

// NewGCSStore creates a GCS-backed store for the given bucket. token is a
// bearer token (service account access token); baseURL overrides the API
// endpoint for testing and defaults to the public one when empty.
func NewGCSStore(bucket, token, baseURL string) *GCSStore {
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com"
	}
	return &GCSStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		bucket:  bucket,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *GCSStore) object(key string) string {
	return key + ".json"
}

func (s *GCSStore) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gcs request failed: %w", err)
	}
	return resp, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", key, err)
	}
	u := fmt.Sprintf("%s/upload/storage/v1/b/%s/o?uploadType=media&name=%s",
		s.baseURL, s.bucket, url.QueryEscape(s.object(key)))
	resp, err := s.do(ctx, http.MethodPost, u, strings.NewReader(string(data)), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gcs upload of %s returned %d: %s", key, resp.StatusCode, body)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, key string, out any) error {
	u := fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
		s.baseURL, s.bucket, url.PathEscape(s.object(key)))
	resp, err := s.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gcs download of %s returned %d: %s", key, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// listResponse is the subset of the GCS objects.list response we consume.
type listResponse struct {
	Items []struct {
		Name string `json:"name"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([][]byte, error) {
	var docs [][]byte
	pageToken := ""
	for {
		u := fmt.Sprintf("%s/storage/v1/b/%s/o?prefix=%s",
			s.baseURL, s.bucket, url.QueryEscape(prefix))
		if pageToken != "" {
			u += "&pageToken=" + url.QueryEscape(pageToken)
		}
		resp, err := s.do(ctx, http.MethodGet, u, nil, "")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return nil, fmt.Errorf("gcs listing of %s returned %d: %s", prefix, resp.StatusCode, body)
		}
		var page listResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode gcs listing: %w", err)
		}

		for _, item := range page.Items {
			if !strings.HasSuffix(item.Name, ".json") {
				continue
			}
			key := strings.TrimSuffix(item.Name, ".json")
			var raw json.RawMessage
			if err := s.Get(ctx, key, &raw); err != nil {
				// Unreadable object; skip it rather than abort the listing.
				continue
			}
			docs = append(docs, raw)
		}

		if page.NextPageToken == "" {
			return docs, nil
		}
		pageToken = page.NextPageToken
	}
}

func (s *GCSStore) Close() error { return nil }
