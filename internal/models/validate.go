package models

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchemaJSON []byte

var fieldValidator = validator.New()

var (
	resumeSchemaOnce sync.Once
	resumeSchema     *gojsonschema.Schema
	resumeSchemaErr  error
)

func loadResumeSchema() (*gojsonschema.Schema, error) {
	resumeSchemaOnce.Do(func() {
		resumeSchema, resumeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
	})
	return resumeSchema, resumeSchemaErr
}

// FieldViolation describes one rejected field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when structured data does not satisfy the
// record invariants. It is never recovered from locally.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

// CoerceResume turns loosely-shaped JSON into a validated Resume. It does not
// know whether the input came from a model, a form, or portfolio synthesis.
func CoerceResume(raw []byte) (*Resume, error) {
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, newValidationError("(root)", "input is not a JSON object")
	}
	if loose == nil {
		return nil, newValidationError("(root)", "input is null")
	}

	return coerceResumeMap(loose)
}

func coerceResumeMap(loose map[string]any) (*Resume, error) {
	schema, err := loadResumeSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to load resume schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(loose))
	if err != nil {
		return nil, fmt.Errorf("failed to check resume structure: %w", err)
	}
	if !result.Valid() {
		violations := make([]FieldViolation, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, FieldViolation{Field: e.Field(), Message: e.Description()})
		}
		return nil, &ValidationError{Violations: violations}
	}

	wrapValueList(loose, "achievements")
	wrapValueList(loose, "certifications")

	normalized, err := json.Marshal(loose)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode resume: %w", err)
	}

	resume := &Resume{}
	if err := json.Unmarshal(normalized, resume); err != nil {
		return nil, newValidationError("(root)", err.Error())
	}

	resume.Normalize()
	if violations := resume.Validate(); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return resume, nil
}

// wrapValueList rewrites ["a", "b"] into [{"value":"a"}, {"value":"b"}].
// Entries already in wrapper form are left alone.
func wrapValueList(loose map[string]any, key string) {
	list, ok := loose[key].([]any)
	if !ok {
		return
	}
	for i, item := range list {
		if s, ok := item.(string); ok {
			list[i] = map[string]any{"value": s}
		}
	}
}

// Normalize fills absent lists, trims identity fields and expands partial
// profile links.
func (r *Resume) Normalize() {
	r.fillDefaults()
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
	r.GithubLink = NormalizeGithubLink(string(r.GithubLink))
	r.LinkedinLink = NormalizeLinkedinLink(string(r.LinkedinLink))
}

// Validate checks required fields and URL syntax. It does not mutate r.
func (r *Resume) Validate() []FieldViolation {
	var violations []FieldViolation

	if strings.TrimSpace(r.Name) == "" {
		violations = append(violations, FieldViolation{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(r.Email) == "" {
		violations = append(violations, FieldViolation{Field: "email", Message: "email is required"})
	} else if !isValidEmail(r.Email) {
		violations = append(violations, FieldViolation{Field: "email", Message: "invalid email address"})
	}
	if r.GithubLink.IsSet() && !isValidURL(string(r.GithubLink)) {
		violations = append(violations, FieldViolation{Field: "githubLink", Message: "invalid URL"})
	}
	if r.LinkedinLink.IsSet() && !isValidURL(string(r.LinkedinLink)) {
		violations = append(violations, FieldViolation{Field: "linkedinLink", Message: "invalid URL"})
	}

	return violations
}

func isValidEmail(email string) bool {
	return fieldValidator.Var(email, "email") == nil
}
