package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestCoerceResume_FillsEveryAbsentField(t *testing.T) {
	resume, err := CoerceResume([]byte(`{"name":"Jane Doe","email":"jane@x.com","coreSkills":["Go","Rust"]}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resume.Name)
	assert.Equal(t, "jane@x.com", resume.Email)
	assert.Equal(t, []string{"Go", "Rust"}, resume.CoreSkills)
	assert.Equal(t, Link(""), resume.GithubLink)
	assert.Equal(t, Link(""), resume.LinkedinLink)
	assert.Empty(t, resume.Education)
	assert.Empty(t, resume.Experience)

	out, err := json.Marshal(resume)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	for _, key := range []string{
		"name", "email", "mobileNumber", "githubLink", "linkedinLink", "professionalSummary",
		"coreSkills", "education", "experience", "projects", "achievements", "certifications",
	} {
		require.Contains(t, generic, key)
		assert.NotNil(t, generic[key], key)
	}
	assert.Equal(t, []any{}, generic["education"])
	assert.Equal(t, []any{}, generic["certifications"])
	assert.Equal(t, "", generic["githubLink"])
}

func TestCoerceResume_NullsBecomeDefaults(t *testing.T) {
	resume, err := CoerceResume([]byte(`{
		"name": "Jane Doe", "email": "jane@x.com",
		"mobileNumber": null, "githubLink": null, "projects": null, "achievements": null
	}`))
	require.NoError(t, err)

	assert.Equal(t, "", resume.MobileNumber)
	assert.Equal(t, Link(""), resume.GithubLink)
	assert.NotNil(t, resume.Projects)
	assert.NotNil(t, resume.Achievements)
}

func TestCoerceResume_WrapsBareStrings(t *testing.T) {
	resume, err := CoerceResume([]byte(`{
		"name": "Jane Doe", "email": "jane@x.com",
		"achievements": ["Won award X", {"value": "Shipped Y"}],
		"certifications": ["CKA"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []ValueItem{{Value: "Won award X"}, {Value: "Shipped Y"}}, resume.Achievements)
	assert.Equal(t, []ValueItem{{Value: "CKA"}}, resume.Certifications)
}

func TestCoerceResume_RejectsMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields []string
	}{
		{"missing name", `{"email":"jane@x.com"}`, []string{"name"}},
		{"blank name", `{"name":"   ","email":"jane@x.com"}`, []string{"name"}},
		{"missing email", `{"name":"Jane"}`, []string{"email"}},
		{"invalid email", `{"name":"Jane","email":"not-an-email"}`, []string{"email"}},
		{"email without tld", `{"name":"Jane","email":"jane@localhost"}`, []string{"email"}},
		{"display name email", `{"name":"Jane","email":"Jane <jane@x.com>"}`, []string{"email"}},
		{"both", `{}`, []string{"name", "email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoerceResume([]byte(tt.input))
			assert.ElementsMatch(t, tt.fields, violationFields(t, err))
		})
	}
}

func TestCoerceResume_RejectsWrongShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `name: Jane`},
		{"null", `null`},
		{"array", `["Jane"]`},
		{"skills not a list", `{"name":"Jane","email":"jane@x.com","coreSkills":"Go, Rust"}`},
		{"name not a string", `{"name":42,"email":"jane@x.com"}`},
		{"achievement object without value", `{"name":"Jane","email":"jane@x.com","achievements":[{"title":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoerceResume([]byte(tt.input))
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCoerceResume_NormalizesPartialLinks(t *testing.T) {
	resume, err := CoerceResume([]byte(`{
		"name": "Jane Doe", "email": "jane@x.com",
		"githubLink": "octocat", "linkedinLink": "in/octocat"
	}`))
	require.NoError(t, err)

	assert.Equal(t, Link("https://github.com/octocat"), resume.GithubLink)
	assert.Equal(t, Link("https://linkedin.com/in/octocat"), resume.LinkedinLink)
}

func TestCoerceResume_RejectsUnusableLink(t *testing.T) {
	_, err := CoerceResume([]byte(`{
		"name": "Jane Doe", "email": "jane@x.com",
		"githubLink": "https://github.com/octo cat"
	}`))
	assert.Equal(t, []string{"githubLink"}, violationFields(t, err))
}

func TestCoerceResume_PreservesOrderWithoutDedup(t *testing.T) {
	resume, err := CoerceResume([]byte(`{
		"name": "Jane Doe", "email": "jane@x.com",
		"coreSkills": ["Rust", "Go", "Rust"],
		"education": [
			{"institution": "B", "degree": "MSc", "dates": "2020"},
			{"institution": "A", "degree": "BSc", "dates": "2016"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Rust", "Go", "Rust"}, resume.CoreSkills)
	require.Len(t, resume.Education, 2)
	assert.Equal(t, "B", resume.Education[0].Institution)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Violations: []FieldViolation{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "invalid email address"},
	}}
	assert.Equal(t, "validation failed: name: name is required; email: invalid email address", err.Error())
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"jane@x.com", "first.last+tag@sub.example.org"}
	invalid := []string{"", "jane", "jane@", "@x.com", "jane@x", "jane@.com", "jane doe@x.com", "Jane <jane@x.com>"}

	for _, e := range valid {
		assert.True(t, isValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, isValidEmail(e), e)
	}
}

func TestCoerceResume_PlaceholderLinksAreAbsent(t *testing.T) {
	resume, err := CoerceResume([]byte(`{
		"name": "Jane Doe", "email": "jane@x.com",
		"githubLink": "N/A", "linkedinLink": "linkedin.com"
	}`))
	require.NoError(t, err)

	assert.Equal(t, Link(""), resume.GithubLink)
	assert.Equal(t, Link(""), resume.LinkedinLink)
}
