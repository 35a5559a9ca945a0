package scaffold

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// minUsefulLen is the shortest objective or activity, in characters, worth keeping.
	minUsefulLen = 25

	// echoSimilarity is the word-level similarity ratio at which an answer is taken as a copy of its prompt.
	echoSimilarity = 0.7
)

var resourceLine = regexp.MustCompile(
	`(?i)^-\s*(?P<title>.+?)\s*\[(?P<type>paper|video|curso|mooc|podcast|libro)\]\s*\((?P<url>https?://[^\s)]+)\)\s*[:-]\s*(?P<desc>.+)`,
)

// extractList reads the items of a numbered ("1. x") or bulleted ("- x", "• x") list.
// When no line looks like a list item, every non-blank line is taken as an item.
func extractList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(line)
		switch {
		case unicode.IsDigit(first) && strings.Contains(line, "."):
			items = append(items, strings.TrimSpace(strings.SplitN(line, ".", 2)[1]))
		case first == '-' || first == '•':
			items = append(items, strings.TrimSpace(line[size:]))
		}
	}
	if len(items) > 0 || text == "" {
		return items
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, strings.Trim(line, "-• "))
	}
	return items
}

// extractResources parses the "- title [type] (url): summary" lines of text.
// It returns nil when no line matches.
func extractResources(text string) []PreworkResource {
	var resources []PreworkResource
	for _, line := range strings.Split(text, "\n") {
		m := resourceLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		resources = append(resources, PreworkResource{
			Title:   m[resourceLine.SubexpIndex("title")],
			Type:    strings.ToLower(m[resourceLine.SubexpIndex("type")]),
			URL:     m[resourceLine.SubexpIndex("url")],
			Summary: strings.TrimSpace(m[resourceLine.SubexpIndex("desc")]),
		})
	}
	return resources
}

func usefulObjectives(objs []string) bool {
	switch {
	case len(objs) == 0:
		return false
	case len(objs) == 1 && (strings.Contains(objs[0], "Redacta") || strings.Contains(strings.ToLower(objs[0]), "objetivo")):
		return false
	}
	return utf8.RuneCountInString(objs[0]) >= minUsefulLen
}

func usefulActivity(activity string) bool {
	return activity != "" &&
		!strings.Contains(activity, "Redacta") &&
		utf8.RuneCountInString(activity) >= minUsefulLen
}

func usefulRubric(rubric string) bool {
	return strings.Contains(rubric, "Nivel 1")
}

// isPromptEcho reports whether `text` mostly repeats `prompt`, as some completion models do.
func isPromptEcho(prompt, text string) bool {
	a := strings.Fields(strings.ToLower(prompt))
	b := strings.Fields(strings.ToLower(text))
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return difflib.NewMatcher(a, b).Ratio() >= echoSimilarity
}
