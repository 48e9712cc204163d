package parser

import (
	"regexp"
	"sort"
)

// skillPatterns is the fixed technology vocabulary matched against document
// text. Grouped by concern so additions stay reviewable.
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(python|java|javascript|react|angular|vue|node\.?js|express|django|flask|fastapi)\b`),
	regexp.MustCompile(`\b(sql|mysql|postgresql|mongodb|redis|docker|kubernetes)\b`),
	regexp.MustCompile(`\b(aws|azure|gcp|git|github|gitlab)\b`),
	regexp.MustCompile(`\b(machine learning|deep learning|tensorflow|pytorch|scikit-learn)\b`),
	regexp.MustCompile(`\b(pandas|numpy|matplotlib|seaborn|jupyter)\b`),
	regexp.MustCompile(`\b(html|css|bootstrap|tailwind|sass|less|typescript)\b`),
	regexp.MustCompile(`\b(rest api|graphql|microservices|agile|scrum|devops)\b`),
	regexp.MustCompile(`\b(spring|hibernate|jpa|junit|maven|gradle)\b`),
	regexp.MustCompile(`\b(ios|android|swift|kotlin|flutter|react native)\b`),
	regexp.MustCompile(`\b(linux|unix|bash|shell|powershell)\b`),
	regexp.MustCompile(`\b(jenkins|ci/cd|terraform|ansible|prometheus|grafana)\b`),
}

// extractSkills matches the technology vocabulary against lower-cased text
// and returns a sorted, deduplicated skill list.
func extractSkills(lowerText string) []string {
	seen := map[string]struct{}{}
	for _, re := range skillPatterns {
		for _, match := range re.FindAllString(lowerText, -1) {
			seen[match] = struct{}{}
		}
	}
	return sortedSet(seen)
}

func sortedSet(seen map[string]struct{}) []string {
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
