package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGithubLink(t *testing.T) {
	tests := map[string]Link{
		"":                                "",
		"   ":                             "",
		"octocat":                         "https://github.com/octocat",
		"@octocat":                        "https://github.com/octocat",
		"github.com/octocat":              "https://github.com/octocat",
		"www.github.com/octocat":          "https://github.com/octocat",
		"https://github.com/octocat":      "https://github.com/octocat",
		"http://github.com/octocat":       "http://github.com/octocat",
		"gitlab.com/octocat":              "https://gitlab.com/octocat",
		" https://github.com/octocat/x  ": "https://github.com/octocat/x",
		"N/A":                             "",
		"none":                            "",
		"-":                               "",
		"github.com":                      "",
		"https://www.github.com/":         "",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeGithubLink(input), "input %q", input)
	}
}

func TestNormalizeLinkedinLink(t *testing.T) {
	tests := map[string]Link{
		"":                                     "",
		"in/octocat":                           "https://linkedin.com/in/octocat",
		"/in/octocat":                          "https://linkedin.com/in/octocat",
		"octocat":                              "https://linkedin.com/in/octocat",
		"company/acme":                         "https://linkedin.com/company/acme",
		"linkedin.com/in/octocat":              "https://linkedin.com/in/octocat",
		"www.linkedin.com/in/octocat":          "https://www.linkedin.com/in/octocat",
		"https://www.linkedin.com/in/octocat/": "https://www.linkedin.com/in/octocat/",
		"n/a":                                  "",
		"Not provided":                         "",
		"linkedin.com/":                        "",
		"https://linkedin.com":                 "",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeLinkedinLink(input), "input %q", input)
	}
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, isValidURL("https://github.com/octocat"))
	assert.True(t, isValidURL("http://example.com"))

	assert.False(t, isValidURL("github.com/octocat"))
	assert.False(t, isValidURL("ftp://example.com/file"))
	assert.False(t, isValidURL("https://"))
	assert.False(t, isValidURL("https://exa mple.com"))
}

func TestLink_IsSet(t *testing.T) {
	assert.False(t, Link("").IsSet())
	assert.False(t, Link("  ").IsSet())
	assert.True(t, Link("https://github.com/octocat").IsSet())
}
