package controllers

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestDatabase(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeProvider stands in for the OpenSubtitles client
type fakeProvider struct {
	mu          sync.Mutex
	candidates  []models.SubtitleCandidate
	searchErr   error
	searches    []opensubtitles.SearchParams
	content     []byte
	downloadErr error
	downloads   int
	credentials bool
}

func (p *fakeProvider) Search(ctx context.Context, params opensubtitles.SearchParams) ([]models.SubtitleCandidate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searches = append(p.searches, params)
	return p.candidates, p.searchErr
}

func (p *fakeProvider) Download(ctx context.Context, fileID int64, format string) (*opensubtitles.DownloadResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.downloads++
	if p.downloadErr != nil {
		return nil, p.downloadErr
	}
	return &opensubtitles.DownloadResult{FileName: "sub." + format, Content: p.content, Remaining: 99}, nil
}

func (p *fakeProvider) HasCredentials() bool {
	return p.credentials
}

// emptyLibrary answers no library query
type emptyLibrary struct {
	mu    sync.Mutex
	calls int
}

func (l *emptyLibrary) QueryInto(ctx context.Context, method string, params interface{}, out interface{}) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return false
}
