package helpers

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	plainText     = bluemonday.StrictPolicy()
	slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

const maxSanitizePasses = 8

// PlainText strips all markup from user input and trims surrounding space.
// Entity-encoded markup is decoded and stripped too, repeating until the
// text stops changing, so PlainText(PlainText(s)) == PlainText(s).
func PlainText(input string) string {
	text := input
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(plainText.Sanitize(html.UnescapeString(text))))
		if next == text {
			break
		}
		text = next
	}
	return text
}

// Slugify lowercases, strips accents and joins words with hyphens.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(title)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	slug := slugSeparator.ReplaceAllString(b.String(), "-")
	return strings.Trim(slug, "-")
}

// UniqueIDs trims, drops blanks and de-duplicates while keeping order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Excerpt shortens s to at most n runes, adding an ellipsis when cut.
func Excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// NewObjectKey returns a random, URL-safe object key.
func NewObjectKey() string {
	return uuid.NewString()
}
