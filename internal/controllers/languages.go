package controllers

import (
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language names the player uses for variants the provider spells
// differently from ISO 639-1.
var languageOverrides = map[string]string{
	"English":               "en",
	"Portuguese (Brazil)":   "pt-br",
	"Portuguese":            "pt-pt",
	"Chinese":               "zh-cn",
	"Chinese (simplified)":  "zh-cn",
	"Chinese (traditional)": "zh-tw",
}

var codeOverrides = map[string]string{
	"en":    "English",
	"pt-br": "Portuguese (Brazil)",
	"pt-pt": "Portuguese",
	"zh-cn": "Chinese (simplified)",
	"zh-tw": "Chinese (traditional)",
}

var flagOverrides = map[string]string{
	"pt-pt": "pt",
	"pt-br": "pb",
	"zh-cn": "zh",
	"zh-tw": "-",
}

// Two letter codes offered by the subtitle provider
var providerCodes = []string{
	"af", "an", "ar", "as", "az", "be", "bg", "bn", "br", "bs", "ca", "cs", "cy", "da",
	"de", "el", "eo", "es", "et", "eu", "fa", "fi", "fr", "ga", "gd", "gl", "he", "hi",
	"hr", "hu", "hy", "ia", "id", "ig", "is", "it", "ja", "ka", "kk", "km", "kn", "ko",
	"ku", "lb", "lt", "lv", "mk", "ml", "mn", "mr", "ms", "my", "ne", "nl", "no", "oc",
	"or", "pl", "ps", "ro", "ru", "sd", "si", "sk", "sl", "so", "sq", "sr", "sv", "sw",
	"ta", "te", "th", "tk", "tl", "tr", "tt", "uk", "ur", "uz", "vi",
}

// namesToCodes maps lowercased English language names to provider codes
var namesToCodes = buildNameIndex()

func buildNameIndex() map[string]string {
	index := make(map[string]string, len(providerCodes)+len(languageOverrides))
	names := display.English.Languages()
	for _, code := range providerCodes {
		if name := names.Name(language.Make(code)); name != "" {
			index[strings.ToLower(name)] = code
		}
	}
	for name, code := range languageOverrides {
		index[strings.ToLower(name)] = code
	}
	return index
}

// LanguageCode converts an English language name to a provider code
func LanguageCode(name string) (string, bool) {
	code, ok := namesToCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// LanguageName converts a provider code back to an English name. Unknown
// codes are returned unchanged.
func LanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if name, ok := codeOverrides[code]; ok {
		return name
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

// Flag returns the flag icon code for a provider language code
func Flag(code string) string {
	code = strings.ToLower(code)
	if flag, ok := flagOverrides[code]; ok {
		return flag
	}
	return code
}

// LanguageCodes turns a comma separated (possibly URL escaped) list of
// language names plus the player's preferred language into provider
// codes. Names without a code are logged and skipped.
func LanguageCodes(languages, preferred string, logger *logrus.Logger) []string {
	if unescaped, err := url.QueryUnescape(languages); err == nil {
		languages = unescaped
	}

	var names []string
	for _, name := range strings.Split(languages, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	preferred = strings.TrimSpace(preferred)
	if preferred != "" && preferred != "Unknown" && preferred != "Undetermined" && !containsFold(names, preferred) {
		names = append(names, preferred)
	}

	var codes []string
	seen := make(map[string]struct{})
	for _, name := range names {
		code, ok := LanguageCode(name)
		if !ok {
			logger.WithField("language", name).Warn("Language code not found")
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
