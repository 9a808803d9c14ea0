package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RendererClient forwards slide changes to an external preview renderer
// over HTTP. Configuring one is optional; the websocket hub covers
// in-process preview clients.
type RendererClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRendererClient(baseURL, apiKey string) *RendererClient {
	return &RendererClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// slideRequest is the body for POST /api/slide.
type slideRequest struct {
	DocID      string `json:"doc_id"`
	SlideIndex int    `json:"slide_index"`
	SlideLevel int    `json:"slide_level"`
}

// ShowSlide tells the renderer to display the given unit.
func (c *RendererClient) ShowSlide(ctx context.Context, docID string, index, level int) error {
	body, err := json.Marshal(slideRequest{
		DocID:      docID,
		SlideIndex: index,
		SlideLevel: level,
	})
	if err != nil {
		return fmt.Errorf("marshal slide request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/slide", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("show slide: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("show slide %s/%d: status %d: %s", docID, index, resp.StatusCode, string(respBody))
	}
	return nil
}

// Health checks whether the renderer is reachable.
func (c *RendererClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("renderer health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("renderer health: status %d", resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (c *RendererClient) Close() {
	c.httpClient.CloseIdleConnections()
}
