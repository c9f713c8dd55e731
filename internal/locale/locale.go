package locale

import (
	"sort"
	"strconv"
	"strings"
)

// Code identifies one of the two supported locales.
type Code string

const (
	EnUS Code = "en-us"
	JaJP Code = "ja-jp"
)

// Default is the locale served at the unprefixed route tree.
const Default = EnUS

// Locale carries the display and routing attributes of a supported locale.
type Locale struct {
	Code     Code
	Lang     string // short language tag: "en", "ja"
	Name     string
	Flag     string
	Prefix   string // URL path prefix: "" or "/ja"
	OGLocale string // OpenGraph locale: "en_US", "ja_JP"
	BCP47    string // "en-US", "ja-JP"
}

var registry = map[Code]Locale{
	EnUS: {
		Code:     EnUS,
		Lang:     "en",
		Name:     "English",
		Flag:     "🇺🇸",
		Prefix:   "",
		OGLocale: "en_US",
		BCP47:    "en-US",
	},
	JaJP: {
		Code:     JaJP,
		Lang:     "ja",
		Name:     "日本語",
		Flag:     "🇯🇵",
		Prefix:   "/ja",
		OGLocale: "ja_JP",
		BCP47:    "ja-JP",
	},
}

// All returns the supported locales in a stable order, default first.
func All() []Locale {
	return []Locale{registry[EnUS], registry[JaJP]}
}

// Get returns the registry entry for a code, defaulting to en-us for
// anything unknown.
func Get(code Code) Locale {
	if l, ok := registry[code]; ok {
		return l
	}
	return registry[Default]
}

// IsSupported reports whether code is one of the two supported locales.
func IsSupported(code Code) bool {
	_, ok := registry[code]
	return ok
}

// Parse normalizes an arbitrary locale string to a supported Code.
// CMS locales map one-to-one; everything else falls back to the default.
func Parse(s string) Code {
	if code := Code(strings.ToLower(s)); IsSupported(code) {
		return code
	}
	return Default
}

// Alternate returns the other supported locale.
func Alternate(code Code) Code {
	if code == JaJP {
		return EnUS
	}
	return JaJP
}

// Prefix returns the URL path prefix for a locale ("" or "/ja").
func Prefix(code Code) string {
	return Get(code).Prefix
}

// FromPath resolves the locale from a request path. Only a leading "ja"
// segment selects Japanese; everything else is English.
func FromPath(path string) Code {
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if seg == "ja" {
			return JaJP
		}
		return EnUS
	}
	return EnUS
}

// Detect picks the best supported locale from an Accept-Language header.
// Entries are ordered by quality, then matched by language prefix.
func Detect(acceptLanguage string) Code {
	if acceptLanguage == "" {
		return Default
	}

	type candidate struct {
		lang    string
		quality float64
	}

	var candidates []candidate
	for _, part := range strings.Split(acceptLanguage, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang := part
		quality := 1.0
		if idx := strings.Index(part, ";q="); idx >= 0 {
			lang = part[:idx]
			if q, err := strconv.ParseFloat(part[idx+3:], 64); err == nil {
				quality = q
			}
		}
		// q=0 means "not acceptable", not a low-preference candidate.
		if quality <= 0 {
			continue
		}
		candidates = append(candidates, candidate{
			lang:    strings.ToLower(strings.TrimSpace(lang)),
			quality: quality,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].quality > candidates[j].quality
	})

	for _, c := range candidates {
		if strings.HasPrefix(c.lang, "ja") {
			return JaJP
		}
		if strings.HasPrefix(c.lang, "en") {
			return EnUS
		}
	}

	return Default
}

// AlternateURLs builds the hreflang URL set for a path. The incoming path
// may carry either locale prefix and an optional query string.
func AlternateURLs(fullPath, baseURL string) map[string]string {
	path := fullPath
	query := ""
	if idx := strings.Index(fullPath, "?"); idx >= 0 {
		path = fullPath[:idx]
		query = fullPath[idx+1:]
	}

	route := strings.Trim(path, "/")
	// Strip only an exact leading "ja" segment; "japan-travel" keeps its name.
	if route == "ja" {
		route = ""
	} else if strings.HasPrefix(route, "ja/") {
		route = strings.Trim(route[3:], "/")
	}

	construct := func(prefix string) string {
		segments := make([]string, 0, 3)
		for _, s := range []string{strings.TrimRight(baseURL, "/"), prefix, route} {
			if s != "" {
				segments = append(segments, s)
			}
		}
		u := strings.Join(segments, "/")
		if query != "" {
			u += "?" + query
		}
		return u
	}

	return map[string]string{
		string(EnUS): construct(""),
		string(JaJP): construct("ja"),
		"x-default":  construct(""),
	}
}
