package normalize

import (
	"math"
	"strings"

	"golang.org/x/net/html"
)

// MatchesKeyword reports whether term occurs, case-insensitively, in the
// space-joined concatenation of fields. An empty term matches everything.
func MatchesKeyword(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), term)
}

// Paginate returns items[start : start+perPage], clamped to the slice.
// A perPage of zero or less returns everything from start.
func Paginate[T any](items []T, start, perPage int) []T {
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if perPage > 0 && start+perPage < end {
		end = start + perPage
	}
	return items[start:end]
}

// Offset converts a 1-based page into a zero-based item offset. A page too
// large to represent saturates to math.MaxInt, which is past any real listing.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// HTMLText flattens an HTML fragment into its visible text. Script and style
// contents are dropped. Malformed markup degrades to whatever text the
// tokenizer recovered.
func HTMLText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
			sb.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			sb.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}
