package parser

import (
	"regexp"
	"strings"
)

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f]+`)
	newlineRuns = regexp.MustCompile(`\n\s*\n+`)

	resumeBoilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpage \d+ of \d+\b`),
		regexp.MustCompile(`(?i)\bconfidential\b`),
		regexp.MustCompile(`(?i)\bprivate\b`),
		regexp.MustCompile(`(?i)\bresume\b`),
		regexp.MustCompile(`(?i)\bcurriculum vitae\b`),
		regexp.MustCompile(`(?i)\bcv\b`),
	}

	jobBoilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bjob description\b`),
		regexp.MustCompile(`(?i)\bjob posting\b`),
		regexp.MustCompile(`(?i)\bcareer opportunity\b`),
		regexp.MustCompile(`(?i)\bwe are hiring\b`),
		regexp.MustCompile(`(?i)\bjoin our team\b`),
	}
)

// CleanResumeText normalizes whitespace and strips resume boilerplate.
func CleanResumeText(text string) string {
	return cleanText(text, resumeBoilerplate)
}

// CleanJobText normalizes whitespace and strips job-posting boilerplate.
func CleanJobText(text string) string {
	return cleanText(text, jobBoilerplate)
}

// cleanText collapses space runs and blank-line runs while keeping single
// newlines, then removes boilerplate phrases. Line structure is preserved
// because downstream extraction rules scan line by line.
func cleanText(text string, boilerplate []*regexp.Regexp) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	for _, re := range boilerplate {
		text = re.ReplaceAllString(text, "")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// nonEmptyLines returns trimmed lines with blanks removed.
func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
