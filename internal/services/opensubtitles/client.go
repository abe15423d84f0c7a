package opensubtitles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/metrics"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL   = "https://api.opensubtitles.com/api/v1"
	defaultUserAgent = "opensubtitles-com v1.0.0"
	maxErrorBody     = 4096
)

// Client handles communication with the OpenSubtitles REST API
type Client struct {
	apiKey     string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     *logrus.Logger

	mu      sync.Mutex
	baseURL string
	token   string
}

// SearchParams is everything a subtitle search sends to the provider
type SearchParams struct {
	Query             models.MediaQuery
	Languages         string // comma separated provider codes
	MovieHash         string
	HearingImpaired   string
	ForeignPartsOnly  string
	MachineTranslated string
	AITranslated      string
}

// DownloadResult is a downloaded subtitle file
type DownloadResult struct {
	FileName  string
	Content   []byte
	Remaining int
	ResetTime string
}

// NewClient creates a new OpenSubtitles API client
func NewClient(cfg *config.Config, m *metrics.Metrics, logger *logrus.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.OpenSubtitlesAPIKey)
	if apiKey == "" {
		return nil, &Error{Kind: KindConfiguration, Message: "OPENSUBTITLES_API_KEY is required"}
	}

	baseURL := strings.TrimRight(cfg.OpenSubtitlesBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.OpenSubtitlesUserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		apiKey:     apiKey,
		username:   cfg.OpenSubtitlesUsername,
		password:   cfg.OpenSubtitlesPassword,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		metrics:    m,
		logger:     logger,
		baseURL:    baseURL,
	}, nil
}

// HasCredentials reports whether a username was configured
func (c *Client) HasCredentials() bool {
	return c.username != ""
}

// Login exchanges the configured credentials for a user token
func (c *Client) Login(ctx context.Context) error {
	if c.username == "" || c.password == "" {
		return &Error{Kind: KindConfiguration, Message: "username and password are required to log in"}
	}

	var resp loginResponse
	err := c.doRequest(ctx, http.MethodPost, "/login", nil, loginRequest{Username: c.username, Password: c.password}, &resp)
	c.record("login", err)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return &Error{Kind: KindAuthentication, Message: "login returned no token"}
	}

	c.mu.Lock()
	c.token = resp.Token
	// VIP accounts get a dedicated host; only follow it from the public API.
	if resp.BaseURL != "" && c.baseURL == defaultBaseURL {
		c.baseURL = "https://" + strings.TrimPrefix(strings.TrimRight(resp.BaseURL, "/"), "https://") + "/api/v1"
	}
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"username":          c.username,
		"allowed_downloads": resp.User.AllowedDownloads,
		"vip":               resp.User.VIP,
	}).Info("Logged in to OpenSubtitles")
	return nil
}

// Search queries subtitles for a resolved media query
func (c *Client) Search(ctx context.Context, params SearchParams) ([]models.SubtitleCandidate, error) {
	var resp searchResponse
	err := c.doRequest(ctx, http.MethodGet, "/subtitles", searchValues(params), nil, &resp)
	c.record("search", err)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.SubtitleCandidate, 0, len(resp.Data))
	for _, entry := range resp.Data {
		attrs := entry.Attributes
		if len(attrs.Files) == 0 {
			continue
		}
		candidates = append(candidates, models.SubtitleCandidate{
			FileID:          attrs.Files[0].FileID,
			Language:        attrs.Language,
			Release:         attrs.Release,
			Rating:          float64(attrs.Ratings),
			HearingImpaired: attrs.HearingImpaired,
			MovieHashMatch:  attrs.MovieHashMatch,
			FeatureTitle:    attrs.FeatureDetails.Title,
			MovieName:       attrs.FeatureDetails.MovieName,
			DownloadCount:   attrs.DownloadCount,
			FileName:        attrs.Files[0].FileName,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"query":      params.Query.Query,
		"total":      resp.TotalCount,
		"candidates": len(candidates),
	}).Info("OpenSubtitles search completed")
	return candidates, nil
}

// Download requests a download link for fileID and fetches the file
func (c *Client) Download(ctx context.Context, fileID int64, format string) (*DownloadResult, error) {
	if c.HasCredentials() && c.currentToken() == "" {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}

	var resp downloadResponse
	err := c.doRequest(ctx, http.MethodPost, "/download", nil, downloadRequest{FileID: fileID, SubFormat: format}, &resp)
	if err != nil {
		c.record("download", err)
		return nil, err
	}
	if resp.Link == "" {
		err := &Error{Kind: KindProvider, Message: "download response has no link"}
		c.record("download", err)
		return nil, err
	}

	content, err := c.fetch(ctx, resp.Link)
	c.record("download", err)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"file_id":   fileID,
		"file_name": resp.FileName,
		"remaining": resp.Remaining,
	}).Info("Subtitle downloaded")

	return &DownloadResult{
		FileName:  resp.FileName,
		Content:   content,
		Remaining: resp.Remaining,
		ResetTime: resp.ResetTime,
	}, nil
}

// Guess asks the guessit utility what a filename refers to
func (c *Client) Guess(ctx context.Context, filename string) (*models.Guess, error) {
	var resp guessitResponse
	values := url.Values{}
	values.Set("filename", filename)

	err := c.doRequest(ctx, http.MethodGet, "/utilities/guessit", values, nil, &resp)
	c.record("guessit", err)
	if err != nil {
		return nil, err
	}

	guess := &models.Guess{
		Type:    models.MediaTypeMovie,
		Title:   resp.Title,
		Season:  resp.Season.ptr(),
		Episode: resp.Episode.ptr(),
		Year:    resp.Year.ptr(),
	}
	if resp.Type == string(models.MediaTypeEpisode) {
		guess.Type = models.MediaTypeEpisode
	}
	return guess, nil
}

// searchValues builds the query string. url.Values encodes keys sorted,
// which the API expects to avoid a redirect.
func searchValues(params SearchParams) url.Values {
	q := params.Query
	values := url.Values{}

	setInt := func(key string, v *int) {
		if v != nil && *v > 0 {
			values.Set(key, strconv.Itoa(*v))
		}
	}

	if q.Query != "" {
		values.Set("query", strings.ToLower(q.Query))
	}
	setInt("year", q.Year)
	setInt("parent_imdb_id", q.ParentIMDbID)
	setInt("parent_tmdb_id", q.ParentTMDbID)
	setInt("imdb_id", q.IMDbID)
	setInt("tmdb_id", q.TMDbID)
	if q.SeasonNumber != "" {
		values.Set("season_number", q.SeasonNumber)
	}
	if q.EpisodeNumber != "" {
		values.Set("episode_number", q.EpisodeNumber)
	}
	if params.Languages != "" {
		values.Set("languages", strings.ToLower(params.Languages))
	}
	if params.MovieHash != "" {
		values.Set("moviehash", params.MovieHash)
	}
	if params.HearingImpaired != "" {
		values.Set("hearing_impaired", params.HearingImpaired)
	}
	if params.ForeignPartsOnly != "" {
		values.Set("foreign_parts_only", params.ForeignPartsOnly)
	}
	if params.MachineTranslated != "" {
		values.Set("machine_translated", params.MachineTranslated)
	}
	if params.AITranslated != "" {
		values.Set("ai_translated", params.AITranslated)
	}
	return values
}

// doRequest performs a request against the API and decodes the JSON response
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	c.mu.Lock()
	fullURL := c.baseURL + path
	token := c.token
	c.mu.Unlock()
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    fullURL,
	}).Debug("Making OpenSubtitles API request")

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindServiceUnavailable, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errorForStatus(resp.StatusCode, errorMessage(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &Error{Kind: KindProvider, Message: "failed to decode response", Err: err}
		}
	}

	return nil
}

func (c *Client) fetch(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindServiceUnavailable, Message: "download link request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errorForStatus(resp.StatusCode, errorMessage(bodyBytes))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindProvider, Message: "failed to read subtitle file", Err: err}
	}
	return content, nil
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) record(operation string, err error) {
	if err == nil {
		c.metrics.ProviderCall(operation, "ok")
		return
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindProvider
	}
	c.metrics.ProviderCall(operation, string(kind))
}

func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if len(parsed.Errors) > 0 {
			return strings.Join(parsed.Errors, "; ")
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response"
	}
	return msg
}
