package opensubtitles

import (
	"encoding/json"
	"strconv"
	"strings"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	BaseURL string `json:"base_url"`
	User    struct {
		AllowedDownloads int  `json:"allowed_downloads"`
		VIP              bool `json:"vip"`
	} `json:"user"`
}

type searchResponse struct {
	TotalPages int             `json:"total_pages"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	Data       []searchSubtitle `json:"data"`
}

type searchSubtitle struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Attributes subtitleAttributes `json:"attributes"`
}

type subtitleAttributes struct {
	Language        string         `json:"language"`
	DownloadCount   int            `json:"download_count"`
	HearingImpaired bool           `json:"hearing_impaired"`
	Ratings         flexibleFloat  `json:"ratings"`
	Release         string         `json:"release"`
	MovieHashMatch  bool           `json:"moviehash_match"`
	FeatureDetails  featureDetails `json:"feature_details"`
	Files           []subtitleFile `json:"files"`
}

type featureDetails struct {
	FeatureID   int    `json:"feature_id"`
	FeatureType string `json:"feature_type"`
	Year        int    `json:"year"`
	Title       string `json:"title"`
	MovieName   string `json:"movie_name"`
}

type subtitleFile struct {
	FileID   int64  `json:"file_id"`
	CDNumber int    `json:"cd_number"`
	FileName string `json:"file_name"`
}

type downloadRequest struct {
	FileID    int64  `json:"file_id"`
	SubFormat string `json:"sub_format,omitempty"`
}

type downloadResponse struct {
	Link      string `json:"link"`
	FileName  string `json:"file_name"`
	Requests  int    `json:"requests"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
	ResetTime string `json:"reset_time"`
}

type guessitResponse struct {
	Title   string      `json:"title"`
	Year    flexibleInt `json:"year"`
	Season  flexibleInt `json:"season"`
	Episode flexibleInt `json:"episode"`
	Type    string      `json:"type"`
}

type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// flexibleFloat accepts numbers and numeric strings
type flexibleFloat float64

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexibleFloat(v)
	return nil
}

// flexibleInt accepts numbers, numeric strings, and lists (first element wins)
type flexibleInt struct {
	Value int
	Set   bool
}

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return nil
		}
		return f.UnmarshalJSON(list[0])
	}

	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.Value = v
	f.Set = true
	return nil
}

func (f flexibleInt) ptr() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}
