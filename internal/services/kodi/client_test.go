package kodi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := NewClient(&config.Config{KodiURL: server.URL, KodiUsername: "kodi", KodiPassword: "secret"}, logger)
	require.NoError(t, err)
	return client
}

func TestCallDecodesResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "kodi", user)
		assert.Equal(t, "secret", pass)

		var req rpcRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "VideoLibrary.GetTVShowDetails", req.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"tvshowdetails":{"imdbnumber":"tt0944947"}}}`))
	})

	var result struct {
		TVShowDetails struct {
			IMDbNumber string `json:"imdbnumber"`
		} `json:"tvshowdetails"`
	}
	err := client.Call(context.Background(), "VideoLibrary.GetTVShowDetails", map[string]interface{}{"tvshowid": 3}, &result)
	require.NoError(t, err)
	assert.Equal(t, "tt0944947", result.TVShowDetails.IMDbNumber)
}

func TestCallReturnsRPCError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params."}}`))
	})

	err := client.Call(context.Background(), "VideoLibrary.GetTVShowDetails", nil, nil)
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, -32602, rpcErr.Code)
}

func TestCallHTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	err := client.Call(context.Background(), "JSONRPC.Ping", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestInfoLabelsAndPlayingFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			Params struct {
				Labels []string `json:"labels"`
			} `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "XBMC.GetInfoLabels", req.Method)

		result := map[string]string{}
		for _, label := range req.Params.Labels {
			switch label {
			case "VideoPlayer.Title":
				result[label] = "Pilot"
			case LabelPlayingFile:
				result[label] = "/media/Show.S01E01.mkv"
			default:
				result[label] = ""
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0", "id": 1, "result": result})
	})

	labels, err := client.InfoLabels(context.Background(), []string{"VideoPlayer.Title", "VideoPlayer.Year"})
	require.NoError(t, err)
	assert.Equal(t, "Pilot", labels["VideoPlayer.Title"])
	assert.Equal(t, "", labels["VideoPlayer.Year"])

	path, err := client.PlayingFile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/media/Show.S01E01.mkv", path)
}
