package models

import "strings"

// Link is an optional profile URL. The empty string means "not present";
// there is no separate null state.
type Link string

func (l Link) IsSet() bool {
	return strings.TrimSpace(string(l)) != ""
}

func (l Link) String() string {
	return string(l)
}

// NormalizeGithubLink expands a bare username or a scheme-less github.com
// path into a fully-qualified URL.
//
//	"octocat"            -> "https://github.com/octocat"
//	"github.com/octocat" -> "https://github.com/octocat"
func NormalizeGithubLink(raw string) Link {
	s := cleanLinkInput(raw)
	if s == "" || isBareHost(s, "github.com") {
		return ""
	}
	if hasHTTPScheme(s) {
		return Link(s)
	}

	lower := strings.ToLower(s)
	lower = strings.TrimPrefix(lower, "www.")
	if strings.HasPrefix(lower, "github.com/") {
		return Link("https://github.com/" + s[strings.Index(strings.ToLower(s), "github.com/")+len("github.com/"):])
	}
	if looksLikeHost(s) {
		return Link("https://" + s)
	}

	return Link("https://github.com/" + s)
}

// NormalizeLinkedinLink expands a LinkedIn path fragment or handle into a
// fully-qualified URL.
//
//	"in/octocat"              -> "https://linkedin.com/in/octocat"
//	"linkedin.com/in/octocat" -> "https://linkedin.com/in/octocat"
//	"octocat"                 -> "https://linkedin.com/in/octocat"
func NormalizeLinkedinLink(raw string) Link {
	s := cleanLinkInput(raw)
	if s == "" || isBareHost(s, "linkedin.com") {
		return ""
	}
	if hasHTTPScheme(s) {
		return Link(s)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "linkedin.com/"):
		return Link("https://linkedin.com/" + s[len("linkedin.com/"):])
	case looksLikeHost(s):
		return Link("https://" + s)
	case strings.HasPrefix(lower, "in/"),
		strings.HasPrefix(lower, "company/"),
		strings.HasPrefix(lower, "pub/"):
		return Link("https://linkedin.com/" + s)
	case !strings.Contains(s, "/"):
		return Link("https://linkedin.com/in/" + s)
	}

	return Link("https://linkedin.com/" + s)
}

// isValidURL reports whether s is an absolute http(s) URL with a host.
func isValidURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	return fieldValidator.Var(s, "http_url") == nil
}

// linkPlaceholders are values models and forms use for "no link".
var linkPlaceholders = map[string]struct{}{
	"n/a": {}, "na": {}, "none": {}, "null": {}, "nil": {}, "-": {}, "--": {},
	"unknown": {}, "not provided": {}, "not available": {},
}

// cleanLinkInput trims decoration and maps placeholders to "".
func cleanLinkInput(raw string) string {
	s := strings.TrimSpace(raw)
	if _, ok := linkPlaceholders[strings.ToLower(s)]; ok {
		return ""
	}
	s = strings.TrimPrefix(s, "@")
	s = strings.TrimPrefix(s, "/")
	return s
}

// isBareHost reports whether s names host (with or without scheme and www.)
// but no profile path.
func isBareHost(s, host string) bool {
	lower := strings.ToLower(s)
	lower = strings.TrimPrefix(lower, "https://")
	lower = strings.TrimPrefix(lower, "http://")
	lower = strings.TrimPrefix(lower, "www.")
	lower = strings.TrimRight(lower, "/")
	return lower == host
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// looksLikeHost reports whether the first path segment is a domain name.
func looksLikeHost(s string) bool {
	host, _, _ := strings.Cut(s, "/")
	return strings.Contains(host, ".")
}
