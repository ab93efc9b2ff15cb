package scan

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Guess is everything the scanner could read out of a release-style
// filename. Any field may be empty; the metadata resolver treats an
// empty Year or IMDBID as "search without it".
type Guess struct {
	// Title is the cleaned search title.
	Title string

	// Year is the release year found in parentheses, if any.
	Year string

	// Fallback is an alternate title found in non-year parentheses
	// (often a translated title), usable as a second search attempt.
	Fallback string

	// IMDBID is a tt-prefixed IMDb id embedded in the name, if any.
	IMDBID string

	// Source is the normalized media source named in the filename
	// ("BluRay", "WEB-DL", ...), if any.
	Source string
}

const minPlausibleYear = 1888

var (
	imdbIDPattern    = regexp.MustCompile(`(?i)\btt\d{7,8}\b`)
	parensYearAnyRe  = regexp.MustCompile(`\(\s*(\d{4})\s*\)`)
	parensYearFullRe = regexp.MustCompile(`^\(\s*(\d{4})\s*\)$`)
	parensGroupRe    = regexp.MustCompile(`\([^)]*\)`)
	bracketOrParenRe = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	separatorRe      = regexp.MustCompile(`[._]`)
)

// Release names spell sources many ways. Order matters: more specific
// needles first.
var sourceAliases = []struct {
	needle     string
	normalized string
}{
	{"uhd bdremux", "UHD BDRemux"},
	{"bdremux", "BDRemux"},
	{"bdrip", "BDRip"},
	{"bluray", "BluRay"},
	{"blu-ray", "BluRay"},
	{"microhd", "MicroHD"},
	{"webrip", "WEBRip"},
	{"web-rip", "WEBRip"},
	{"web rip", "WEBRip"},
	{"webdl", "WEB-DL"},
	{"web-dl", "WEB-DL"},
}

// Tags that disqualify a parenthesized string from being a fallback
// title: it is release noise, not a translated title.
var fallbackNoiseTags = []string{"bluray", "web-dl", "bdrip", "microhd", "uhdrip", "bdremux", "webdl"}

// ParseFilename extracts a searchable title, year, fallback title,
// IMDb id and source from a media filename.
//
// The heuristics favor precision over recall: only a parenthesized
// four-digit number in a plausible range counts as a year (dotted
// torrent names keep their noise in the title and rely on the catalog
// search to cope), and the last such year wins because release names
// often carry several parenthesized groups.
//
// Example:
//
//	g := scan.ParseFilename("Movie Title (Director's Cut) (2021) (BluRay).mkv")
//	// g.Title == "Movie Title", g.Year == "2021",
//	// g.Fallback == "Director's Cut", g.Source == "BluRay"
func ParseFilename(filename string) Guess {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	g := Guess{
		IMDBID: strings.ToLower(imdbIDPattern.FindString(base)),
		Source: parseSource(base),
	}

	name := separatorRe.ReplaceAllString(stem, " ")
	maxYear := time.Now().Year() + 1 // allow next-year releases

	// Last plausible parenthesized year wins.
	var yearMatch []int
	for _, m := range parensYearAnyRe.FindAllStringSubmatchIndex(name, -1) {
		y, err := strconv.Atoi(name[m[2]:m[3]])
		if err != nil || y < minPlausibleYear || y > maxYear {
			continue
		}
		g.Year = strconv.Itoa(y)
		yearMatch = m
	}
	if yearMatch != nil {
		name = strings.TrimSpace(name[:yearMatch[0]])
	}

	g.Fallback = fallbackTitle(name, maxYear)

	g.Title = strings.TrimSpace(bracketOrParenRe.ReplaceAllString(name, ""))
	return g
}

// fallbackTitle returns the content of the first non-year parenthesized
// group, unless it is pure digits or release noise.
func fallbackTitle(name string, maxYear int) string {
	for _, loc := range parensGroupRe.FindAllStringIndex(name, -1) {
		group := name[loc[0]:loc[1]]
		if m := parensYearFullRe.FindStringSubmatch(group); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil && y >= minPlausibleYear && y <= maxYear {
				continue
			}
		}

		text := strings.TrimSpace(group[1 : len(group)-1])
		if text == "" || isAllDigits(text) || containsNoiseTag(text) {
			return ""
		}
		return text
	}
	return ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func containsNoiseTag(s string) bool {
	lower := strings.ToLower(s)
	for _, tag := range fallbackNoiseTags {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func parseSource(filename string) string {
	lower := strings.ToLower(filename)
	for _, alias := range sourceAliases {
		if strings.Contains(lower, alias.needle) {
			return alias.normalized
		}
	}
	return ""
}
