package ranking

// Category is a family of release-name vocabulary. Each group holds
// synonyms: a filename mentioning any of them matches the whole group.
type Category struct {
	Name   string
	Weight float64
	Groups [][]string
}

var (
	releaseCategory = Category{
		Name:   "release",
		Weight: 10,
		Groups: [][]string{
			{"bluray", "bd", "bdrip", "brrip", "bdmv", "bdscr", "remux", "bdremux", "uhdremux", "uhdbdremux", "uhdbluray"},
			{"web", "webdl", "webrip", "webr", "webdlrip", "webcap"},
			{"dvd", "dvd5", "dvd9", "dvdr", "dvdrip", "dvdscr"},
			{"scr", "screener", "r5", "r6"},
			{"avi"}, {"mp4"}, {"mkv"}, {"ts"}, {"m2ts"}, {"mts"},
			{"mpeg"}, {"mpg"}, {"mov"}, {"wmv"}, {"flv"}, {"vob"},
		},
	}

	serviceCategory = Category{
		Name:   "service",
		Weight: 10,
		Groups: [][]string{
			{"netflix", "nflx", "nf"},
			{"amazon", "amzn", "primevideo"},
			{"hulu", "hlu"},
			{"crunchyroll", "cr"},
			{"disney", "disneyplus"},
			{"hbo", "hbonow", "hbogo", "hbomax", "hmax"},
			{"bbc"},
			{"sky", "skyq"},
			{"syfy"},
			{"atvp", "atvplus"},
			{"pcok", "peacock"},
		},
	}

	qualityCategory = Category{
		Name:   "quality",
		Weight: 5,
		Groups: [][]string{
			{"4k", "2160p", "2160", "4kuhd", "4kultrahd", "ultrahd", "uhd"},
			{"1080p", "1080"},
			{"720p", "720"},
			{"480p"},
			{"360p", "240p", "144p"},
		},
	}

	audioCategory = Category{
		Name:   "audio",
		Weight: 2,
		Groups: [][]string{
			{"dts", "dtshd", "atmos", "truehd"},
			{"aac", "ac"},
			{"dd", "ddp", "ddp5", "dd5", "dd2", "dd1", "dd7", "ddp7"},
		},
	}

	codecCategory = Category{
		Name:   "codec",
		Weight: 2,
		Groups: [][]string{
			{"x264", "h264", "264", "avc"},
			{"x265", "h265", "265", "hevc"},
			{"av1", "vp9", "vp8", "divx", "xvid"},
		},
	}

	extraCategory = Category{
		Name:   "extra",
		Weight: 2,
		Groups: [][]string{{"extended"}, {"cut"}, {"remastered"}, {"proper"}},
	}

	colorCategory = Category{
		Name:   "color",
		Weight: 2,
		Groups: [][]string{
			{"hdr", "10bit", "12bit", "hdr10", "hdr10plus", "dolbyvision", "dolby", "vision"},
			{"sdr", "8bit"},
		},
	}
)

// Categories lists the vocabulary in cost-vector order
var Categories = []Category{
	releaseCategory,
	serviceCategory,
	qualityCategory,
	audioCategory,
	codecCategory,
	extraCategory,
	colorCategory,
}
