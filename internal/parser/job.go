package parser

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultJobTitle = "Software Engineer"

var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:position|role|title|job):\s*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:we are looking for|seeking|hiring)\s+(?:a|an)?\s*([^\n]+?)(?:\s+to\b|\n|$)`),
		regexp.MustCompile(`(?m)^([A-Z][^.\n]{5,50})(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:senior|junior|lead|principal)\s+(?:software|data|web|mobile|devops|cloud|ai|ml)\s+(?:engineer|developer|analyst|scientist|architect|consultant)`),
		regexp.MustCompile(`(?i)(?:software|data|web|mobile|devops|cloud|ai|ml)\s+(?:engineer|developer|analyst|scientist|architect|consultant)`),
	}

	roleKeywords = []string{"engineer", "developer", "analyst", "scientist", "architect", "consultant", "manager"}

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:company|organization):\s*([^\n]+)`),
		regexp.MustCompile(`(?:join|work with)\s+([A-Z][^.\n]+)`),
		regexp.MustCompile(`(?m)^([A-Z][^.\n]{2,30})(?:\s+is\b|\s+seeks\b|\s+hiring\b)`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:location|based in|office in):\s*([^\n]+)`),
		regexp.MustCompile(`(?i)\b(hyderabad|bangalore|pune|delhi|mumbai|chennai|kolkata|gurgaon|noida)\b`),
		regexp.MustCompile(`(?i)\b(remote|hybrid|onsite)\b`),
	}

	parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

	requiredSectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:required|must have|mandatory|essential|core)\s+(?:skills|qualifications|requirements?):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:candidate must have|candidates should have|you must have):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:minimum|basic)\s+(?:requirements?|qualifications?):?\s*([^.]*)`),
	}

	preferredSectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:preferred|good to have|nice to have|bonus|plus|advantage):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:additional|extra|optional)\s+(?:skills|qualifications?):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:would be great|ideal candidate):?\s*([^.]*)`),
	}

	qualificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:bachelor|master|phd|doctorate|diploma|certificate)[^\n]*?(?:in|of|,)[^\n]*?(?:computer science|engineering|technology|it|software)`),
		regexp.MustCompile(`(?i)(?:b\.?s\.?|m\.?s\.?|ph\.?d\.?|m\.?b\.?a\.?)[^\n]*?(?:in|of|,)[^\n]*?(?:computer science|engineering|technology|it|software)`),
		regexp.MustCompile(`(?i)(?:degree|graduation)[^\n]*?(?:in|of|,)[^\n]*?(?:computer science|engineering|technology|it|software)`),
		regexp.MustCompile(`(?i)(?:years? of experience|experience level):?\s*(\d+[+\-\s]*(?:years?|yrs?))`),
		regexp.MustCompile(`(?i)(?:minimum|at least)\s+(\d+)\s+(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)`),
	}

	levelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)entry level|junior|fresher|0-2\s*years?`),
		regexp.MustCompile(`(?i)mid level|intermediate|2-5\s*years?`),
		regexp.MustCompile(`(?i)senior|lead|5-8\s*years?`),
		regexp.MustCompile(`(?i)principal|architect|8\+\s*years?`),
	}

	yearsRangePattern   = regexp.MustCompile(`(\d+)\s*[-+]\s*(\d+)\s*(?:years?|yrs?)`)
	yearsMinimumPattern = regexp.MustCompile(`(?i)(?:minimum|at least)\s+(\d+)\s+(?:years?|yrs?)`)
	yearsPlusPattern    = regexp.MustCompile(`(\d+)\+\s*(?:years?|yrs?)`)
	yearsPlainPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)`)

	responsibilitySectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:responsibilities|duties|what you will do|key responsibilities?):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:role and responsibilities?|job responsibilities?):?\s*([^.]*)`),
	}

	benefitSectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:benefits|perks|compensation|package):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:we offer|what we offer):?\s*([^.]*)`),
	}

	bulletSplit = regexp.MustCompile(`[\x{2022}\-\*\n]`)

	genericCompanyWords = []string{"skills", "experience", "requirements", "qualifications"}
)

// ParseJobDescription turns raw posting text into a structured document.
// It never fails: unusable input yields defaults plus a parse error marker.
func ParseJobDescription(text string) JobDescription {
	doc := JobDescription{
		RawText:          text,
		JobTitle:         defaultJobTitle,
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		Qualifications:   []string{},
		Responsibilities: []string{},
		Benefits:         []string{},
	}
	if strings.TrimSpace(text) == "" {
		doc.ParseError = "empty job description text"
		return doc
	}

	cleaned := CleanJobText(text)
	doc.CleanedText = cleaned
	lower := strings.ToLower(cleaned)

	doc.JobTitle = extractJobTitle(cleaned)
	doc.Company = extractCompanyInfo(cleaned)
	doc.RequiredSkills = extractRequiredSkills(lower)
	doc.PreferredSkills = extractPreferredSkills(lower)
	doc.Qualifications = extractQualifications(lower)
	doc.ExperienceReqs = extractExperienceRequirements(lower)
	doc.Responsibilities = extractSectionItems(lower, responsibilitySectionPatterns, 10)
	doc.Benefits = extractSectionItems(lower, benefitSectionPatterns, 5)

	return doc
}

// extractJobTitle tries the ordered title patterns, then falls back to the
// first early line containing a role keyword, then the default title.
func extractJobTitle(text string) string {
	for _, re := range titlePatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := match[0]
		if len(match) > 1 && match[1] != "" {
			candidate = match[1]
		}
		candidate = strings.TrimSpace(candidate)
		if len(candidate) >= 3 && len(candidate) <= 100 {
			return candidate
		}
	}

	lines := nonEmptyLines(text)
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		if containsAny(strings.ToLower(line), roleKeywords) {
			return line
		}
	}
	return defaultJobTitle
}

func extractCompanyInfo(text string) CompanyInfo {
	info := CompanyInfo{}
	for _, re := range companyPatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := strings.TrimSpace(match[1])
		if candidate == "" || containsAny(strings.ToLower(candidate), genericCompanyWords) {
			continue
		}
		info.Name = candidate
		break
	}

	for _, re := range locationPatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := match[0]
		if len(match) > 1 && match[1] != "" {
			candidate = match[1]
		}
		candidate = strings.TrimSpace(parenthetical.ReplaceAllString(candidate, ""))
		if candidate != "" {
			info.Location = candidate
			break
		}
	}

	return info
}

// extractRequiredSkills unions skills found in requirement sections with
// skills mentioned anywhere in the document.
func extractRequiredSkills(lowerText string) []string {
	seen := map[string]struct{}{}
	for _, re := range requiredSectionPatterns {
		for _, match := range re.FindAllStringSubmatch(lowerText, -1) {
			for _, skill := range extractSkills(match[1]) {
				seen[skill] = struct{}{}
			}
		}
	}
	for _, skill := range extractSkills(lowerText) {
		seen[skill] = struct{}{}
	}
	return sortedSet(seen)
}

func extractPreferredSkills(lowerText string) []string {
	seen := map[string]struct{}{}
	for _, re := range preferredSectionPatterns {
		for _, match := range re.FindAllStringSubmatch(lowerText, -1) {
			for _, skill := range extractSkills(match[1]) {
				seen[skill] = struct{}{}
			}
		}
	}
	return sortedSet(seen)
}

func extractQualifications(lowerText string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, re := range qualificationPatterns {
		for _, match := range re.FindAllString(lowerText, -1) {
			match = strings.TrimSpace(match)
			if match == "" {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}
	return out
}

func extractExperienceRequirements(lowerText string) ExperienceRequirements {
	req := ExperienceRequirements{}

	for _, re := range levelPatterns {
		if match := re.FindString(lowerText); match != "" {
			req.Level = match
			break
		}
	}

	if match := yearsRangePattern.FindStringSubmatch(lowerText); match != nil {
		req.MinYears = atoiSafe(match[1])
		req.MaxYears = atoiSafe(match[2])
		return req
	}
	if match := yearsMinimumPattern.FindStringSubmatch(lowerText); match != nil {
		req.MinYears = atoiSafe(match[1])
		return req
	}
	if match := yearsPlusPattern.FindStringSubmatch(lowerText); match != nil {
		req.MinYears = atoiSafe(match[1])
		return req
	}
	if match := yearsPlainPattern.FindStringSubmatch(lowerText); match != nil {
		req.MinYears = atoiSafe(match[1])
	}
	return req
}

// extractSectionItems captures section bodies, splits them on bullets and
// newlines, and keeps fragments longer than minLen.
func extractSectionItems(lowerText string, patterns []*regexp.Regexp, minLen int) []string {
	items := []string{}
	seen := map[string]struct{}{}
	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(lowerText, -1) {
			for _, point := range bulletSplit.Split(match[1], -1) {
				point = strings.TrimSpace(point)
				if len(point) <= minLen {
					continue
				}
				if _, ok := seen[point]; ok {
					continue
				}
				seen[point] = struct{}{}
				items = append(items, point)
			}
		}
	}
	return items
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
