package kodi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/sirupsen/logrus"
)

const jsonRPCVersion = "2.0"

// Client talks to the Kodi JSON-RPC endpoint over HTTP
type Client struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
	logger     *logrus.Logger
	nextID     atomic.Int64
}

// RPCError is the error member of a JSON-RPC response
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("json-rpc error %d: %s", e.Code, e.Message)
}

// RemoteCode returns the JSON-RPC error code
func (e *RPCError) RemoteCode() int {
	return e.Code
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// NewClient creates a new Kodi JSON-RPC client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.KodiURL == "" {
		return nil, fmt.Errorf("KODI_URL is required")
	}

	return &Client{
		endpoint:   cfg.KodiURL,
		username:   cfg.KodiUsername,
		password:   cfg.KodiPassword,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}, nil
}

// Call invokes method with params and decodes the result member into result.
// A response carrying an error member returns *RPCError.
func (c *Client) Call(ctx context.Context, method string, params interface{}, result interface{}) error {
	payload := rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"id":     payload.ID,
	}).Debug("Making Kodi JSON-RPC request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("JSON-RPC request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}

	return nil
}
