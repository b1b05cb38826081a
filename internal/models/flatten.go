package models

import (
	"fmt"
	"strings"
)

// FlattenResume renders a record as labelled plain text for scoring. Sections
// follow field order and list entries keep their order, so the same record
// always produces the same text.
func FlattenResume(r *Resume) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	line := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	line("Name", r.Name)
	line("Email", r.Email)
	line("Mobile", r.MobileNumber)
	line("GitHub", r.GithubLink.String())
	line("LinkedIn", r.LinkedinLink.String())

	if s := strings.TrimSpace(r.ProfessionalSummary); s != "" {
		fmt.Fprintf(&b, "\nProfessional Summary\n%s\n", s)
	}
	if len(r.CoreSkills) > 0 {
		fmt.Fprintf(&b, "\nCore Skills\n%s\n", strings.Join(r.CoreSkills, ", "))
	}

	if len(r.Experience) > 0 {
		b.WriteString("\nExperience\n")
		for _, e := range r.Experience {
			fmt.Fprintf(&b, "- %s", e.Title)
			if e.Company != "" {
				fmt.Fprintf(&b, " at %s", e.Company)
			}
			if e.Dates != "" {
				fmt.Fprintf(&b, " (%s)", e.Dates)
			}
			b.WriteString("\n")
			if e.Description != "" {
				fmt.Fprintf(&b, "  %s\n", e.Description)
			}
		}
	}

	if len(r.Education) > 0 {
		b.WriteString("\nEducation\n")
		for _, e := range r.Education {
			fmt.Fprintf(&b, "- %s, %s", e.Degree, e.Institution)
			if e.Dates != "" {
				fmt.Fprintf(&b, " (%s)", e.Dates)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Projects) > 0 {
		b.WriteString("\nProjects\n")
		for _, p := range r.Projects {
			fmt.Fprintf(&b, "- %s", p.Name)
			if p.Description != "" {
				fmt.Fprintf(&b, ": %s", p.Description)
			}
			b.WriteString("\n")
		}
	}

	writeValues(&b, "Achievements", r.Achievements)
	writeValues(&b, "Certifications", r.Certifications)

	return strings.TrimSpace(b.String())
}

func writeValues(b *strings.Builder, title string, items []ValueItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item.Value)
	}
}
