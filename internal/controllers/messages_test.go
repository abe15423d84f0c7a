package controllers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	limit := fmt.Errorf("wrapped: %w", &opensubtitles.Error{Kind: opensubtitles.KindDownloadLimit})

	assert.Contains(t, UserMessage(limit, false), "Log in")
	assert.Contains(t, UserMessage(limit, true), "your account")
	assert.Contains(t, UserMessage(&opensubtitles.Error{Kind: opensubtitles.KindAuthentication}, true), "username and password")
	assert.Contains(t, UserMessage(&opensubtitles.Error{Kind: opensubtitles.KindTooManyRequests}, true), "Too many requests")
	assert.Contains(t, UserMessage(errors.New("boom"), true), "could not be reached")
}
