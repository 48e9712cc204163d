package parser

// ContactInfo holds the candidate identity extracted from a resume.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Education is one degree entry found in a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Experience is one work history entry found in a resume.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project is one project entry found in a resume.
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url"`
}

// Resume is the structured form of a parsed resume.
// Extraction is heuristic; absent data yields empty collections, never a failed parse.
type Resume struct {
	RawText        string       `json:"rawText"`
	CleanedText    string       `json:"cleanedText"`
	Contact        ContactInfo  `json:"contactInfo"`
	Skills         []string     `json:"skills"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Certifications []string     `json:"certifications"`
	ParseError     string       `json:"parseError,omitempty"`
}

// CompanyInfo holds employer details extracted from a job description.
type CompanyInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Industry string `json:"industry"`
}

// ExperienceRequirements captures how much experience a posting asks for.
// MaxYears of 0 means no upper bound was stated.
type ExperienceRequirements struct {
	MinYears    int    `json:"minYears"`
	MaxYears    int    `json:"maxYears,omitempty"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// JobDescription is the structured form of a parsed job posting.
type JobDescription struct {
	RawText          string                 `json:"rawText"`
	CleanedText      string                 `json:"cleanedText"`
	JobTitle         string                 `json:"jobTitle"`
	Company          CompanyInfo            `json:"companyInfo"`
	RequiredSkills   []string               `json:"requiredSkills"`
	PreferredSkills  []string               `json:"preferredSkills"`
	Qualifications   []string               `json:"qualifications"`
	ExperienceReqs   ExperienceRequirements `json:"experienceRequirements"`
	Responsibilities []string               `json:"responsibilities"`
	Benefits         []string               `json:"benefits"`
	ParseError       string                 `json:"parseError,omitempty"`
}
