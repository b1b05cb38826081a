package models

// Resume is the canonical resume record. Every field is always present when
// serialized: absent text is "" and absent lists are [].
type Resume struct {
	Name                string       `json:"name"`
	Email               string       `json:"email"`
	MobileNumber        string       `json:"mobileNumber"`
	GithubLink          Link         `json:"githubLink"`
	LinkedinLink        Link         `json:"linkedinLink"`
	ProfessionalSummary string       `json:"professionalSummary"`
	CoreSkills          []string     `json:"coreSkills"`
	Education           []Education  `json:"education"`
	Experience          []Experience `json:"experience"`
	Projects            []Project    `json:"projects"`
	Achievements        []ValueItem  `json:"achievements"`
	Certifications      []ValueItem  `json:"certifications"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ValueItem wraps a single string so editable lists can keep a stable
// identity per entry.
type ValueItem struct {
	Value string `json:"value"`
}

// NewResume returns an empty record with every list initialized.
func NewResume() *Resume {
	r := &Resume{}
	r.fillDefaults()
	return r
}

func (r *Resume) fillDefaults() {
	if r.CoreSkills == nil {
		r.CoreSkills = []string{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Achievements == nil {
		r.Achievements = []ValueItem{}
	}
	if r.Certifications == nil {
		r.Certifications = []ValueItem{}
	}
}
