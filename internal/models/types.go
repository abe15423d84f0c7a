package models

// MediaType represents the type of media (movie or tv episode)
type MediaType string

const (
	MediaTypeMovie   MediaType = "movie"
	MediaTypeEpisode MediaType = "episode"
)

// Strategy is the identifier strategy a resolved query searches with
type Strategy string

const (
	StrategyParentIMDb  Strategy = "parent_imdb"
	StrategyParentTMDb  Strategy = "parent_tmdb"
	StrategyEpisodeIMDb Strategy = "episode_imdb"
	StrategyEpisodeTMDb Strategy = "episode_tmdb"
	StrategyMovieIMDb   Strategy = "movie_imdb"
	StrategyMovieTMDb   Strategy = "movie_tmdb"
	StrategyTitleOnly   Strategy = "title_only"
)

// UnknownQuery is the last resort query text
const UnknownQuery = "Unknown"

// IntPtr returns a pointer to a copy of v
func IntPtr(v int) *int {
	return &v
}
