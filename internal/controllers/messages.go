package controllers

import "github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"

// UserMessage explains a provider failure to the person watching.
// loggedIn selects the download limit wording.
func UserMessage(err error, loggedIn bool) string {
	switch opensubtitles.KindOf(err) {
	case opensubtitles.KindAuthentication:
		return "Login failed. Check your OpenSubtitles username and password."
	case opensubtitles.KindDownloadLimit:
		if !loggedIn {
			return "Download limit reached. Log in with an OpenSubtitles account to download more subtitles."
		}
		return "Download limit reached for your account. Try again after your quota resets."
	case opensubtitles.KindTooManyRequests:
		return "Too many requests. Wait a moment and try again."
	case opensubtitles.KindConfiguration:
		return "The OpenSubtitles API key is missing or invalid."
	default:
		return "OpenSubtitles could not be reached. Try again later."
	}
}
