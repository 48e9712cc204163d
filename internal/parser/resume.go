package parser

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)

	educationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(bachelor|master|phd|doctorate|diploma|certificate).*?(in|of|,).*?(\d{4}-\d{4}|\d{4})`),
		regexp.MustCompile(`(?i)(b\.?s\.?|m\.?s\.?|ph\.?d\.?|m\.?b\.?a\.?).*?(in|of|,).*?(\d{4}-\d{4}|\d{4})`),
		regexp.MustCompile(`(?i)(university|college|institute).*?(\d{4}-\d{4}|\d{4})`),
	}

	certificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(aws|azure|gcp|google|microsoft|oracle|cisco|comptia)[^\n]*?(certified|certification|certificate)\b`),
		regexp.MustCompile(`(?i)\b(certified|certification|certificate)[^\n]*?(aws|azure|gcp|google|microsoft|oracle|cisco|comptia)\b`),
		regexp.MustCompile(`(?i)\b(pmp|scrum|agile|itil|six sigma)\b`),
	}

	nameStopWords      = []string{"resume", "cv", "curriculum", "vitae", "email", "phone", "address"}
	experienceKeywords = []string{"experience", "work", "employment"}
	projectKeywords    = []string{"project", "portfolio", "github", "repository"}
)

// ParseResume turns raw resume text into a structured document.
// It never fails: on empty or unusable input the returned document carries
// empty collections and a parse error marker.
func ParseResume(text string) Resume {
	doc := Resume{
		RawText:        text,
		Skills:         []string{},
		Education:      []Education{},
		Experience:     []Experience{},
		Projects:       []Project{},
		Certifications: []string{},
	}
	if strings.TrimSpace(text) == "" {
		doc.ParseError = "empty resume text"
		return doc
	}

	cleaned := CleanResumeText(text)
	doc.CleanedText = cleaned
	lower := strings.ToLower(cleaned)
	lines := nonEmptyLines(cleaned)

	doc.Contact = extractContactInfo(cleaned, lines)
	doc.Skills = extractSkills(lower)
	doc.Education = extractEducation(cleaned)
	doc.Experience = extractExperience(lines)
	doc.Projects = extractProjects(lines)
	doc.Certifications = extractCertifications(lower)

	return doc
}

func extractContactInfo(text string, lines []string) ContactInfo {
	info := ContactInfo{}
	if m := emailPattern.FindString(text); m != "" {
		info.Email = m
	}
	if m := phonePattern.FindString(text); strings.TrimSpace(m) != "" {
		info.Phone = strings.TrimSpace(m)
	}
	info.Name = extractName(lines)
	return info
}

// extractName picks the first of the first five non-empty lines that looks
// like a person's name rather than a section header.
func extractName(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		if len(line) <= 2 || len(line) >= 50 {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, nameStopWords) {
			continue
		}
		return line
	}
	return ""
}

func extractEducation(text string) []Education {
	entries := []Education{}
	seen := map[string]struct{}{}
	for _, re := range educationPatterns {
		for _, match := range re.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if match == "" {
				continue
			}
			key := strings.ToLower(match)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, Education{Degree: match})
		}
	}
	return entries
}

// extractExperience scans for section keywords and records the next
// plausible job-title line within a ten line window.
func extractExperience(lines []string) []Experience {
	entries := []Experience{}
	for i, line := range lines {
		if !containsAny(strings.ToLower(line), experienceKeywords) {
			continue
		}
		end := i + 10
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			next := lines[j]
			if len(next) > 5 && len(next) < 100 {
				entries = append(entries, Experience{Title: next})
				break
			}
		}
	}
	return entries
}

// extractProjects records the next substantial line after a project keyword
// within a five line window.
func extractProjects(lines []string) []Project {
	entries := []Project{}
	for i, line := range lines {
		if !containsAny(strings.ToLower(line), projectKeywords) {
			continue
		}
		end := i + 5
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			next := lines[j]
			if len(next) > 10 {
				entries = append(entries, Project{Name: next})
				break
			}
		}
	}
	return entries
}

func extractCertifications(lowerText string) []string {
	seen := map[string]struct{}{}
	for _, re := range certificationPatterns {
		for _, match := range re.FindAllString(lowerText, -1) {
			match = strings.TrimSpace(match)
			if match != "" {
				seen[match] = struct{}{}
			}
		}
	}
	return sortedSet(seen)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
