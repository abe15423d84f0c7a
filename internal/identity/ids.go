package identity

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
)

// ParseIMDb accepts "tt0133093" or "0133093" and returns the numeric
// payload when it has 6 to 8 digits and is not zero.
func ParseIMDb(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.EqualFold(s[:2], "tt") {
		s = s[2:]
	}
	if len(s) < 6 || len(s) > 8 {
		return 0, false
	}
	return utils.ParsePositiveInt(s)
}

// ParseTMDb accepts a positive decimal id
func ParseTMDb(raw string) (int, bool) {
	return utils.ParsePositiveInt(raw)
}

var (
	guideTMDbField = regexp.MustCompile(`"tmdb"\s*:\s*"?(\d+)`)
	guideTMDbURL   = regexp.MustCompile(`themoviedb\.org/3/tv/(\d+)`)
)

type episodeGuide struct {
	Text string `xml:",chardata"`
}

// DecodeEpisodeGuide extracts the TMDb id from a library episode guide.
// The payload is normally XML whose text is a JSON object of ids; older
// scrapers store URLs instead, so a pattern scan backs up the structured decode.
func DecodeEpisodeGuide(payload string) (int, bool) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return 0, false
	}

	var guide episodeGuide
	if err := xml.Unmarshal([]byte(payload), &guide); err == nil {
		if id, ok := tmdbFromJSON(strings.TrimSpace(guide.Text)); ok {
			return id, true
		}
	}
	if id, ok := tmdbFromJSON(payload); ok {
		return id, true
	}

	for _, pattern := range []*regexp.Regexp{guideTMDbField, guideTMDbURL} {
		if m := pattern.FindStringSubmatch(payload); m != nil {
			if id, ok := ParseTMDb(m[1]); ok {
				return id, true
			}
		}
	}
	return 0, false
}

func tmdbFromJSON(text string) (int, bool) {
	if !strings.HasPrefix(text, "{") {
		return 0, false
	}
	var ids map[string]interface{}
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return 0, false
	}
	switch v := ids["tmdb"].(type) {
	case string:
		return ParseTMDb(v)
	case float64:
		if v > 0 && v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// formatIMDb renders a numeric payload the way IMDb prints it
func formatIMDb(id int) string {
	return fmt.Sprintf("tt%07d", id)
}
