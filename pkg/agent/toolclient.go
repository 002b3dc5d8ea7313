package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// ToolClient calls the read-only Tool Server's list_dir/read_file endpoints,
// using the same hand-rolled HTTP-POST-with-bearer-token pattern as
// pkg/llm.Client.
type ToolClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewToolClient builds a ToolClient from the given configuration and bearer
// token (resolved from cfg.TokenEnv by the caller).
func NewToolClient(cfg *config.ToolServerConfig, token string) *ToolClient {
	return &ToolClient{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		baseURL:    cfg.BaseURL,
		token:      token,
	}
}

// DirEntry is one entry returned by ListDir.
type DirEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ListDir calls POST {base}/tools/list_dir {path} -> {items:[{name,type}]}.
func (c *ToolClient) ListDir(ctx context.Context, path string) ([]DirEntry, error) {
	var resp struct {
		Items []DirEntry `json:"items"`
	}
	if err := c.post(ctx, "/tools/list_dir", map[string]string{"path": path}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ReadFile calls POST {base}/tools/read_file {path} -> {content:string}.
func (c *ToolClient) ReadFile(ctx context.Context, path string) (string, error) {
	var resp struct {
		Content string `json:"content"`
	}
	if err := c.post(ctx, "/tools/read_file", map[string]string{"path": path}, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *ToolClient) post(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("tool server %s: status %d", endpoint, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
