package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// HTTPImageClient talks to an external image API over HTTP. Generation takes
// a JSON prompt body; the transformation endpoints take multipart uploads.
type HTTPImageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPImageClient builds an ImageClient for the given API host.
func NewHTTPImageClient(baseURL, apiKey string) *HTTPImageClient {
	return &HTTPImageClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{},
	}
}

// Generate renders an image for the prompt and returns the raw image bytes.
func (c *HTTPImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-image", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// RemoveBackground uploads the image and returns it with the background removed.
func (c *HTTPImageClient) RemoveBackground(ctx context.Context, image []byte, filename string) ([]byte, error) {
	return c.transform(ctx, "/remove-background", image, filename, nil)
}

// RemoveObject uploads the image and a description of the object to erase.
func (c *HTTPImageClient) RemoveObject(ctx context.Context, image []byte, filename, object string) ([]byte, error) {
	return c.transform(ctx, "/cleanup", image, filename, map[string]string{"object": object})
}

func (c *HTTPImageClient) transform(ctx context.Context, path string, image []byte, filename string, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req)
}

func (c *HTTPImageClient) do(req *http.Request) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image api error: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("image api read: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response from image api")
	}
	return data, nil
}
