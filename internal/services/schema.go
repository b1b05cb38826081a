package services

import "google.golang.org/genai"

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func arrayOf(items *genai.Schema, description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items, Description: description}
}

func objectSchema(props map[string]*genai.Schema, order []string) *genai.Schema {
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		PropertyOrdering: order,
		Required:         order,
	}
}

// resumeResponseSchema mirrors models.Resume, except achievements and
// certifications which the model emits as bare strings.
func resumeResponseSchema() *genai.Schema {
	education := objectSchema(map[string]*genai.Schema{
		"institution": stringSchema(""),
		"degree":      stringSchema(""),
		"dates":       stringSchema("free-form, e.g. 2018 - 2022"),
	}, []string{"institution", "degree", "dates"})

	experience := objectSchema(map[string]*genai.Schema{
		"title":       stringSchema(""),
		"company":     stringSchema(""),
		"dates":       stringSchema(""),
		"description": stringSchema(""),
	}, []string{"title", "company", "dates", "description"})

	project := objectSchema(map[string]*genai.Schema{
		"name":        stringSchema(""),
		"description": stringSchema(""),
	}, []string{"name", "description"})

	return objectSchema(map[string]*genai.Schema{
		"name":                stringSchema("full name"),
		"email":               stringSchema("e-mail address"),
		"mobileNumber":        stringSchema(""),
		"githubLink":          stringSchema("full URL, or empty string"),
		"linkedinLink":        stringSchema("full URL, or empty string"),
		"professionalSummary": stringSchema(""),
		"coreSkills":          arrayOf(stringSchema(""), "most prominent first"),
		"education":           arrayOf(education, "most recent first"),
		"experience":          arrayOf(experience, "most recent first"),
		"projects":            arrayOf(project, ""),
		"achievements":        arrayOf(stringSchema(""), ""),
		"certifications":      arrayOf(stringSchema(""), ""),
	}, []string{
		"name", "email", "mobileNumber", "githubLink", "linkedinLink",
		"professionalSummary", "coreSkills", "education", "experience",
		"projects", "achievements", "certifications",
	})
}

func atsResponseSchema() *genai.Schema {
	return objectSchema(map[string]*genai.Schema{
		"atsScore": {Type: genai.TypeInteger, Description: "0 to 100"},
		"feedback": stringSchema("short summary of the main issues"),
	}, []string{"atsScore", "feedback"})
}

func feedbackResponseSchema() *genai.Schema {
	return objectSchema(map[string]*genai.Schema{
		"feedback": stringSchema("detailed, actionable feedback"),
	}, []string{"feedback"})
}

func synthesizedTextResponseSchema() *genai.Schema {
	return objectSchema(map[string]*genai.Schema{
		"synthesizedText": stringSchema("complete plain-text resume"),
	}, []string{"synthesizedText"})
}

func transcriptionResponseSchema() *genai.Schema {
	return objectSchema(map[string]*genai.Schema{
		"text": stringSchema("verbatim text of the document"),
	}, []string{"text"})
}
