package validation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all markup: no tags, no attributes. Script and style
// element contents are dropped entirely.
var strictPolicy = bluemonday.StrictPolicy()

// PostInput holds the raw fields submitted when creating or updating a post.
type PostInput struct {
	Title string
	Body  string
}

// SanitizePlainText strips all markup from a free-text field and trims
// surrounding whitespace.
func SanitizePlainText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(strings.TrimSpace(s)))
}

// CleanPost sanitizes a post input, returning a new value.
func CleanPost(in PostInput) PostInput {
	return PostInput{
		Title: SanitizePlainText(in.Title),
		Body:  SanitizePlainText(in.Body),
	}
}

// ValidatePost checks a cleaned post input, collecting every message.
func ValidatePost(in PostInput) []string {
	var errs []string
	if in.Title == "" {
		errs = append(errs, "You must provide a title.")
	}
	if in.Body == "" {
		errs = append(errs, "You must provide post content.")
	}
	return errs
}
