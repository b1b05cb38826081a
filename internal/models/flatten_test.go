package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenResume(t *testing.T) {
	r := NewResume()
	r.Name = "Jane Doe"
	r.Email = "jane@x.com"
	r.GithubLink = "https://github.com/jane"
	r.ProfessionalSummary = "Backend engineer."
	r.CoreSkills = []string{"Go", "Rust"}
	r.Experience = []Experience{{Title: "Engineer", Company: "Acme", Dates: "2021 - now", Description: "Built APIs."}}
	r.Education = []Education{{Institution: "MIT", Degree: "BSc", Dates: "2017"}}
	r.Achievements = []ValueItem{{Value: "Won award X"}}

	want := `Name: Jane Doe
Email: jane@x.com
GitHub: https://github.com/jane

Professional Summary
Backend engineer.

Core Skills
Go, Rust

Experience
- Engineer at Acme (2021 - now)
  Built APIs.

Education
- BSc, MIT (2017)

Achievements
- Won award X`

	assert.Equal(t, want, FlattenResume(r))
}

func TestFlattenResume_StableAndOrdered(t *testing.T) {
	r := NewResume()
	r.Name = "Jane"
	r.Projects = []Project{{Name: "second"}, {Name: "first"}}

	first := FlattenResume(r)
	assert.Equal(t, first, FlattenResume(r))
	assert.Less(t, strings.Index(first, "second"), strings.Index(first, "first"))
}

func TestFlattenResume_Nil(t *testing.T) {
	assert.Equal(t, "", FlattenResume(nil))
}
