package match

// FuzzySkillPair records one fuzzy comparison between a required skill and
// the closest resume skill, scored on a 0-100 similarity scale.
type FuzzySkillPair struct {
	JDSkill     string  `json:"jdSkill"`
	ResumeSkill string  `json:"resumeSkill"`
	Similarity  float64 `json:"similarityScore"`
}

// ExactSkillMatch is the result of exact set intersection on skills.
type ExactSkillMatch struct {
	Matches       []string `json:"exactMatches"`
	MissingSkills []string `json:"missingSkills"`
	Score         float64  `json:"exactMatchScore"`
	TotalRequired int      `json:"totalRequiredSkills"`
}

// FuzzySkillMatch is the result of fuzzy skill comparison. Partial pairs
// score between 60 and the match threshold; they are reported but do not
// contribute to the score.
type FuzzySkillMatch struct {
	Matches []FuzzySkillPair `json:"fuzzyMatches"`
	Partial []FuzzySkillPair `json:"partialMatches"`
	Score   float64          `json:"fuzzyMatchScore"`
}

// EducationPair records how one JD qualification matched a resume degree.
type EducationPair struct {
	Qualification string `json:"jdQualification"`
	ResumeDegree  string `json:"resumeDegree"`
	MatchType     string `json:"matchType"`
}

// EducationMatch is the result of qualification comparison.
type EducationMatch struct {
	Matches               []EducationPair `json:"educationMatches"`
	MissingQualifications []string        `json:"missingQualifications"`
	Score                 float64         `json:"educationScore"`
}

// ExperienceMatch is the result of comparing estimated experience against
// the posting's requirements.
type ExperienceMatch struct {
	Score          float64 `json:"experienceScore"`
	MeetsMinimum   bool    `json:"meetsMinimum"`
	EstimatedYears int     `json:"yearsEstimated"`
	Level          string  `json:"experienceLevel"`
}

// CertificationPair records how one certification requirement matched.
type CertificationPair struct {
	Requirement string `json:"jdCertification"`
	ResumeCert  string `json:"resumeCertification"`
	MatchType   string `json:"matchType"`
}

// CertificationMatch is the result of certification comparison.
type CertificationMatch struct {
	Matches []CertificationPair `json:"certificationMatches"`
	Missing []string            `json:"missingCertifications"`
	Score   float64             `json:"certificationScore"`
}

// HardResult bundles all rule-based sub-scores and their fused score.
// Every sub-score lies in [0,1]. Err is set instead of propagating a
// failure; in that case Score is 0.
type HardResult struct {
	Score           float64            `json:"hardMatchScore"`
	Exact           ExactSkillMatch    `json:"exactSkillMatch"`
	Fuzzy           FuzzySkillMatch    `json:"fuzzySkillMatch"`
	Education       EducationMatch     `json:"educationMatch"`
	Experience      ExperienceMatch    `json:"experienceMatch"`
	Certifications  CertificationMatch `json:"certificationMatch"`
	TFIDFSimilarity float64            `json:"tfidfSimilarity"`
	Err             string             `json:"error,omitempty"`
}

// SemanticSkillPair records a required skill matched to its most similar
// resume sentence.
type SemanticSkillPair struct {
	JDSkill       string  `json:"jdSkill"`
	ResumeContext string  `json:"resumeContext"`
	Similarity    float64 `json:"similarityScore"`
}

// SemanticSkills holds per-skill embedding matches and their score.
type SemanticSkills struct {
	Matches []SemanticSkillPair `json:"semanticMatches"`
	Score   float64             `json:"semanticScore"`
}

// LLMAnalysis is the qualitative assessment produced by the generative
// model. Err is set when the call or response parsing failed.
type LLMAnalysis struct {
	FitScore             int      `json:"fitScore"`
	Strengths            []string `json:"strengths"`
	MissingSkills        []string `json:"missingSkills"`
	ExperienceAssessment string   `json:"experienceAssessment"`
	Recommendations      []string `json:"recommendations"`
	Err                  string   `json:"error,omitempty"`
}

// SemanticResult bundles embedding and LLM signals with their fused score.
type SemanticResult struct {
	Score             float64        `json:"semanticScore"`
	OverallSimilarity float64        `json:"overallSimilarity"`
	Skills            SemanticSkills `json:"semanticSkills"`
	LLM               LLMAnalysis    `json:"llmAnalysis"`
	Suggestions       []string       `json:"improvementSuggestions"`
	Err               string         `json:"error,omitempty"`
}
