package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"relevance-backend/internal/parser"
)

// Hard-match fusion weights. They sum to 1.0; the fused score is a convex
// combination of the six sub-scores.
const (
	weightExactSkills    = 0.3
	weightFuzzySkills    = 0.2
	weightEducation      = 0.15
	weightExperience     = 0.15
	weightCertifications = 0.1
	weightTFIDF          = 0.1
)

// DefaultFuzzyThreshold is the 0-100 similarity above which a fuzzy skill
// comparison counts as a match.
const DefaultFuzzyThreshold = 80

// partialThreshold is the floor for reporting a near-miss pair.
const partialThreshold = 60

var (
	degreeLevelKeywords = []string{"bachelor", "master", "phd", "diploma"}
	degreeFieldKeywords = []string{"computer", "engineering", "technology", "software", "it"}
	certKeywords        = []string{"certified", "certification", "certificate", "aws", "azure", "gcp", "pmp", "scrum"}

	durationYears  = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)`)
	durationMonths = regexp.MustCompile(`(\d+)\s*(?:months?|mos?)`)
	durationDays   = regexp.MustCompile(`(\d+)\s*(?:days?|d)`)
)

// HardMatcher computes rule-based sub-scores and fuses them. It holds no
// mutable state between calls; identical inputs produce identical results.
type HardMatcher struct {
	fuzzyThreshold float64
}

// NewHardMatcher builds a matcher with the given fuzzy-match threshold.
// Thresholds outside (0,100] fall back to the default.
func NewHardMatcher(fuzzyThreshold float64) *HardMatcher {
	if fuzzyThreshold <= 0 || fuzzyThreshold > 100 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	return &HardMatcher{fuzzyThreshold: fuzzyThreshold}
}

// Calculate computes every sub-score and the fused hard-match score for
// one resume/posting pair. A panic in any sub-computation is converted
// into a zero score with an error marker; it never escapes this boundary.
func (m *HardMatcher) Calculate(resume parser.Resume, jd parser.JobDescription) (result HardResult) {
	defer func() {
		if r := recover(); r != nil {
			result = HardResult{Err: fmt.Sprintf("hard match failed: %v", r)}
		}
	}()
	return m.calculate(resume, jd)
}

func (m *HardMatcher) calculate(resume parser.Resume, jd parser.JobDescription) HardResult {
	exact := exactSkillMatch(resume.Skills, jd.RequiredSkills)
	fuzzy := m.fuzzySkillMatch(resume.Skills, jd.RequiredSkills)
	education := educationMatch(resume.Education, jd.Qualifications)
	experience := experienceMatch(resume.Experience, jd.ExperienceReqs)
	certs := certificationMatch(resume.Certifications, jd.RequiredSkills)
	tfidf := TFIDFSimilarity(resume.CleanedText, jd.CleanedText)

	score := exact.Score*weightExactSkills +
		fuzzy.Score*weightFuzzySkills +
		education.Score*weightEducation +
		experience.Score*weightExperience +
		certs.Score*weightCertifications +
		tfidf*weightTFIDF

	return HardResult{
		Score:           score,
		Exact:           exact,
		Fuzzy:           fuzzy,
		Education:       education,
		Experience:      experience,
		Certifications:  certs,
		TFIDFSimilarity: tfidf,
	}
}

func exactSkillMatch(resumeSkills, jdSkills []string) ExactSkillMatch {
	resumeSet := lowerSet(resumeSkills)
	jdLower := lowerAll(jdSkills)

	result := ExactSkillMatch{
		Matches:       []string{},
		MissingSkills: []string{},
		TotalRequired: len(jdLower),
	}
	for _, skill := range jdLower {
		if _, ok := resumeSet[skill]; ok {
			result.Matches = append(result.Matches, skill)
		} else {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
	}
	if len(jdLower) > 0 {
		result.Score = float64(len(result.Matches)) / float64(len(jdLower))
	}
	return result
}

func (m *HardMatcher) fuzzySkillMatch(resumeSkills, jdSkills []string) FuzzySkillMatch {
	resumeLower := lowerAll(resumeSkills)
	jdLower := lowerAll(jdSkills)

	result := FuzzySkillMatch{
		Matches: []FuzzySkillPair{},
		Partial: []FuzzySkillPair{},
	}
	for _, jdSkill := range jdLower {
		best, score := bestRatio(jdSkill, resumeLower)
		if best == "" {
			continue
		}
		pair := FuzzySkillPair{JDSkill: jdSkill, ResumeSkill: best, Similarity: score}
		switch {
		case score >= m.fuzzyThreshold:
			result.Matches = append(result.Matches, pair)
		case score >= partialThreshold:
			result.Partial = append(result.Partial, pair)
		}
	}
	if len(jdLower) > 0 {
		result.Score = float64(len(result.Matches)) / float64(len(jdLower))
	}
	return result
}

// bestRatio returns the candidate with the highest Levenshtein similarity
// to target, on a 0-100 scale.
func bestRatio(target string, candidates []string) (string, float64) {
	lev := metrics.NewLevenshtein()
	best := ""
	bestScore := -1.0
	for _, candidate := range candidates {
		score := strutil.Similarity(target, candidate, lev) * 100
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}

// educationMatch credits each posting qualification with 0.5 for a shared
// degree-level keyword or 0.3 for a shared field keyword, first rule wins,
// then normalizes by qualification count.
func educationMatch(resumeEducation []parser.Education, jdQualifications []string) EducationMatch {
	result := EducationMatch{
		Matches:               []EducationPair{},
		MissingQualifications: []string{},
	}

	degrees := make([]string, 0, len(resumeEducation))
	for _, edu := range resumeEducation {
		if edu.Degree != "" {
			degrees = append(degrees, strings.ToLower(edu.Degree))
		}
	}

	var credit float64
	for _, qual := range jdQualifications {
		qualLower := strings.ToLower(qual)
		matched := false
		for _, degree := range degrees {
			if containsAnyKeyword(degree, degreeLevelKeywords) && containsAnyKeyword(qualLower, degreeLevelKeywords) {
				result.Matches = append(result.Matches, EducationPair{
					Qualification: qual,
					ResumeDegree:  degree,
					MatchType:     "degree_level",
				})
				credit += 0.5
				matched = true
				break
			}
			if containsAnyKeyword(degree, degreeFieldKeywords) && containsAnyKeyword(qualLower, degreeFieldKeywords) {
				result.Matches = append(result.Matches, EducationPair{
					Qualification: qual,
					ResumeDegree:  degree,
					MatchType:     "field",
				})
				credit += 0.3
				matched = true
				break
			}
		}
		if !matched {
			result.MissingQualifications = append(result.MissingQualifications, qual)
		}
	}

	denominator := float64(len(jdQualifications))
	if denominator == 0 {
		denominator = 1
	}
	result.Score = credit / denominator
	if result.Score > 1 {
		result.Score = 1
	}
	return result
}

// experienceMatch scores estimated experience against the posting minimum:
// meeting it earns 0.8, raised to 1.0 inside the stated range or 0.9 when
// exceeding the minimum by more than two years; falling short earns the
// ratio of estimated to required years.
func experienceMatch(resumeExperience []parser.Experience, req parser.ExperienceRequirements) ExperienceMatch {
	estimated := estimateExperienceYears(resumeExperience)

	result := ExperienceMatch{EstimatedYears: estimated}

	if estimated >= req.MinYears {
		result.MeetsMinimum = true
		result.Score = 0.8
		if req.MaxYears > 0 && estimated <= req.MaxYears {
			result.Score = 1.0
		} else if estimated > req.MinYears+2 {
			result.Score = 0.9
		}
	} else if req.MinYears > 0 {
		result.Score = float64(estimated) / float64(req.MinYears)
	}

	switch {
	case estimated <= 2:
		result.Level = "entry_level"
	case estimated <= 5:
		result.Level = "mid_level"
	case estimated <= 8:
		result.Level = "senior_level"
	default:
		result.Level = "principal_level"
	}
	return result
}

// estimateExperienceYears sums explicit durations across entries, falling
// back to a title-based guess when an entry has no duration text.
func estimateExperienceYears(entries []parser.Experience) int {
	var total float64
	for _, entry := range entries {
		duration := strings.ToLower(entry.Duration)
		if years, ok := parseDurationYears(duration); ok {
			total += years
			continue
		}
		title := strings.ToLower(entry.Title)
		switch {
		case containsAnyKeyword(title, []string{"senior", "lead", "principal"}):
			total += 3
		case containsAnyKeyword(title, []string{"junior", "entry", "fresher"}):
			total += 1
		default:
			total += 2
		}
	}
	return int(total)
}

func parseDurationYears(duration string) (float64, bool) {
	if match := durationYears.FindStringSubmatch(duration); match != nil {
		return float64(atoi(match[1])), true
	}
	if match := durationMonths.FindStringSubmatch(duration); match != nil {
		return float64(atoi(match[1])) / 12, true
	}
	if match := durationDays.FindStringSubmatch(duration); match != nil {
		return float64(atoi(match[1])) / 365, true
	}
	return 0, false
}

// certificationMatch scores resume certifications against the posting's
// certification-flavored required skills: substring containment earns full
// credit, a fuzzy ratio above 70 earns 0.7.
func certificationMatch(resumeCerts, jdSkills []string) CertificationMatch {
	result := CertificationMatch{
		Matches: []CertificationPair{},
		Missing: []string{},
	}

	certsLower := lowerAll(resumeCerts)
	requirements := []string{}
	for _, skill := range lowerAll(jdSkills) {
		if containsAnyKeyword(skill, certKeywords) {
			requirements = append(requirements, skill)
		}
	}

	lev := metrics.NewLevenshtein()
	var credit float64
	for _, requirement := range requirements {
		matched := false
		for _, cert := range certsLower {
			if strings.Contains(cert, requirement) || strings.Contains(requirement, cert) {
				result.Matches = append(result.Matches, CertificationPair{
					Requirement: requirement,
					ResumeCert:  cert,
					MatchType:   "exact",
				})
				credit += 1
				matched = true
				break
			}
			if strutil.Similarity(requirement, cert, lev)*100 > 70 {
				result.Matches = append(result.Matches, CertificationPair{
					Requirement: requirement,
					ResumeCert:  cert,
					MatchType:   "fuzzy",
				})
				credit += 0.7
				matched = true
				break
			}
		}
		if !matched {
			result.Missing = append(result.Missing, requirement)
		}
	}

	denominator := float64(len(requirements))
	if denominator == 0 {
		denominator = 1
	}
	result.Score = credit / denominator
	if result.Score > 1 {
		result.Score = 1
	}
	return result
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
