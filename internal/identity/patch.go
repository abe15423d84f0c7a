package identity

import "github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"

// Patch is a partial MediaQuery produced by one signal provider.
// Empty strings and nil pointers mean "no opinion".
type Patch struct {
	Year          *int
	SeasonNumber  string
	EpisodeNumber string
	TVShowTitle   string
	OriginalTitle string
	ParentIMDbID  *int
	ParentTMDbID  *int
	IMDbID        *int
	TMDbID        *int
	FilePath      string

	// Override lets the patch replace values already set by earlier
	// providers. Without it the patch only fills empty fields.
	Override bool

	// ReplaceEpisodeIDs treats IMDbID and TMDbID as one pair: when the
	// patch carries either, both earlier episode ids are cleared first.
	ReplaceEpisodeIDs bool
}

// IsEmpty reports whether the patch carries no value
func (p Patch) IsEmpty() bool {
	return p.Year == nil && p.SeasonNumber == "" && p.EpisodeNumber == "" &&
		p.TVShowTitle == "" && p.OriginalTitle == "" && p.FilePath == "" &&
		p.ParentIMDbID == nil && p.ParentTMDbID == nil && p.IMDbID == nil && p.TMDbID == nil
}

// Apply folds the patch into q and returns the result
func (p Patch) Apply(q models.MediaQuery) models.MediaQuery {
	out := q.Clone()
	mergeInt(&out.Year, p.Year, p.Override)
	mergeString(&out.SeasonNumber, p.SeasonNumber, p.Override)
	mergeString(&out.EpisodeNumber, p.EpisodeNumber, p.Override)
	mergeString(&out.TVShowTitle, p.TVShowTitle, p.Override)
	mergeString(&out.OriginalTitle, p.OriginalTitle, p.Override)
	mergeInt(&out.ParentIMDbID, p.ParentIMDbID, p.Override)
	mergeInt(&out.ParentTMDbID, p.ParentTMDbID, p.Override)
	if p.ReplaceEpisodeIDs && (p.IMDbID != nil || p.TMDbID != nil) {
		out.IMDbID, out.TMDbID = nil, nil
	}
	mergeInt(&out.IMDbID, p.IMDbID, p.Override)
	mergeInt(&out.TMDbID, p.TMDbID, p.Override)
	mergeString(&out.FilePath, p.FilePath, p.Override)
	return out
}

func mergeInt(dst **int, v *int, override bool) {
	if v == nil || (*dst != nil && !override) {
		return
	}
	n := *v
	*dst = &n
}

func mergeString(dst *string, v string, override bool) {
	if v == "" || (*dst != "" && !override) {
		return
	}
	*dst = v
}

func idPtr(id int, ok bool) *int {
	if !ok {
		return nil
	}
	return &id
}
