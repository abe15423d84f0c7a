package models

// SubtitleCandidate is a single subtitle file offered by the provider
type SubtitleCandidate struct {
	FileID          int64   `json:"file_id"`
	Language        string  `json:"language"`
	Release         string  `json:"release"`
	Rating          float64 `json:"rating"`
	HearingImpaired bool    `json:"hearing_impaired"`
	MovieHashMatch  bool    `json:"moviehash_match"`
	FeatureTitle    string  `json:"feature_title,omitempty"`
	MovieName       string  `json:"movie_name,omitempty"`
	DownloadCount   int     `json:"download_count,omitempty"`
	FileName        string  `json:"file_name,omitempty"`
}

// Guess is the typed answer of a filename guess service
type Guess struct {
	Type    MediaType `json:"type"`
	Title   string    `json:"title"`
	Season  *int      `json:"season,omitempty"`
	Episode *int      `json:"episode,omitempty"`
	Year    *int      `json:"year,omitempty"`
}

// ListItem is a ranked subtitle ready for presentation
type ListItem struct {
	Label           string `json:"label"`
	Label2          string `json:"label2"`
	Icon            string `json:"icon"`
	Thumb           string `json:"thumb"`
	Sync            bool   `json:"sync"`
	HearingImpaired bool   `json:"hearing_imp"`
	FileID          int64  `json:"file_id"`
	URL             string `json:"url"`
}
