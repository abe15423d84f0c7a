package controllers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
)

// ErrNoDisplayName is returned when a candidate has no title, release or movie name
var ErrNoDisplayName = errors.New("none of title, release or movie name is set")

// CleanFeatureReleaseName builds the second list label. The release label
// is shown alone when it already names the feature.
func CleanFeatureReleaseName(title, release, movieName string) (string, error) {
	name := title
	if name == "" {
		if movieName == "" {
			if release == "" {
				return "", ErrNoDisplayName
			}
			return release, nil
		}
		name = movieName
		// Episode movie names look like "2011 - Show Name"
		if len(name) >= 4 && utils.IsDigits(name[:4]) {
			if len(name) > 7 {
				name = name[7:]
			} else {
				name = ""
			}
		}
	}

	if strings.Contains(release, name) || utils.Similarity(name, release) > 0.3 {
		return release, nil
	}
	return name + " " + release, nil
}

// DownloadURL is where a list item's subtitle can be fetched
func DownloadURL(fileID int64) string {
	return fmt.Sprintf("/api/download/%d", fileID)
}

// NewListItem converts a ranked candidate for presentation. Candidates
// without any name fall back to their file name.
func NewListItem(c models.SubtitleCandidate) models.ListItem {
	label2, err := CleanFeatureReleaseName(c.FeatureTitle, c.Release, c.MovieName)
	if err != nil {
		label2 = c.FileName
	}

	return models.ListItem{
		Label:           LanguageName(c.Language),
		Label2:          label2,
		Icon:            strconv.Itoa(int(math.RoundToEven(c.Rating / 2))),
		Thumb:           Flag(c.Language),
		Sync:            c.MovieHashMatch,
		HearingImpaired: c.HearingImpaired,
		FileID:          c.FileID,
		URL:             DownloadURL(c.FileID),
	}
}
