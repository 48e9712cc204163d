package match

import (
	"math"
	"reflect"
	"testing"

	"relevance-backend/internal/parser"
)

func TestExactSkillMatchScenario(t *testing.T) {
	resume := []string{"python", "django", "postgresql", "git", "docker"}
	required := []string{"python", "django", "fastapi", "postgresql", "git"}

	result := exactSkillMatch(resume, required)

	if result.Score != 0.8 {
		t.Errorf("score = %v, want 0.8", result.Score)
	}
	if len(result.Matches) != 4 {
		t.Errorf("matches = %v, want 4 entries", result.Matches)
	}
	if !reflect.DeepEqual(result.MissingSkills, []string{"fastapi"}) {
		t.Errorf("missing = %v, want [fastapi]", result.MissingSkills)
	}
}

func TestExactSkillMatchBounds(t *testing.T) {
	if got := exactSkillMatch([]string{"go"}, nil).Score; got != 0 {
		t.Errorf("no required skills: score = %v, want 0", got)
	}
	if got := exactSkillMatch([]string{"go", "rust"}, []string{"go", "rust"}).Score; got != 1 {
		t.Errorf("superset: score = %v, want 1", got)
	}
	if got := exactSkillMatch([]string{"go"}, []string{"java"}).Score; got != 0 {
		t.Errorf("disjoint: score = %v, want 0", got)
	}
}

func TestExactSkillMatchCaseInsensitive(t *testing.T) {
	result := exactSkillMatch([]string{"Python"}, []string{"python"})
	if result.Score != 1 {
		t.Errorf("score = %v, want 1", result.Score)
	}
}

func TestMissingSkillsRoundTrip(t *testing.T) {
	resume := []string{"python", "docker"}
	required := []string{"python", "kubernetes", "docker", "terraform"}

	result := exactSkillMatch(resume, required)

	resumeSet := map[string]bool{"python": true, "docker": true}
	for _, missing := range result.MissingSkills {
		if resumeSet[missing] {
			t.Errorf("skill %q reported missing but present in resume", missing)
		}
	}
	for _, matched := range result.Matches {
		for _, missing := range result.MissingSkills {
			if matched == missing {
				t.Errorf("skill %q both matched and missing", matched)
			}
		}
	}
}

func TestFuzzySkillMatch(t *testing.T) {
	m := NewHardMatcher(80)
	result := m.fuzzySkillMatch([]string{"postgresql", "javascript"}, []string{"postgresql", "javascripts"})

	if len(result.Matches) != 2 {
		t.Fatalf("matches = %+v, want 2 entries", result.Matches)
	}
	if result.Score != 1 {
		t.Errorf("score = %v, want 1", result.Score)
	}
	for _, pair := range result.Matches {
		if pair.Similarity < 80 {
			t.Errorf("pair %+v below threshold", pair)
		}
	}
}

func TestFuzzySkillMatchPartialNotScored(t *testing.T) {
	m := NewHardMatcher(80)
	// "django" vs "jango" is close; "python" vs "bash" is not.
	result := m.fuzzySkillMatch([]string{"graphql"}, []string{"graphite"})

	if len(result.Matches) != 0 {
		t.Errorf("unexpected full matches: %+v", result.Matches)
	}
	if result.Score != 0 {
		t.Errorf("partial matches must not contribute to score, got %v", result.Score)
	}
}

func TestEducationMatch(t *testing.T) {
	education := []parser.Education{{Degree: "Bachelor of Technology in Computer Science, 2016"}}
	quals := []string{"bachelor degree in computer science or engineering"}

	result := educationMatch(education, quals)

	if math.Abs(result.Score-0.5) > 1e-9 {
		t.Errorf("score = %v, want 0.5", result.Score)
	}
	if len(result.Matches) != 1 || result.Matches[0].MatchType != "degree_level" {
		t.Errorf("matches = %+v, want one degree_level match", result.Matches)
	}
	if len(result.MissingQualifications) != 0 {
		t.Errorf("missing = %v, want none", result.MissingQualifications)
	}
}

func TestEducationMatchFieldFallback(t *testing.T) {
	education := []parser.Education{{Degree: "Diploma in software engineering"}}
	quals := []string{"graduation in engineering"}

	result := educationMatch(education, quals)

	// Degree-level keywords are absent on the JD side, so the field rule applies.
	if math.Abs(result.Score-0.3) > 1e-9 {
		t.Errorf("score = %v, want 0.3", result.Score)
	}
	if len(result.Matches) != 1 || result.Matches[0].MatchType != "field" {
		t.Errorf("matches = %+v, want one field match", result.Matches)
	}
}

func TestEducationMatchMissing(t *testing.T) {
	result := educationMatch(nil, []string{"phd in physics"})

	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
	if len(result.MissingQualifications) != 1 {
		t.Errorf("missing = %v, want the qualification reported", result.MissingQualifications)
	}
}

func TestExperienceMatchMeetsMinimumExactly(t *testing.T) {
	entries := []parser.Experience{{Title: "Backend Engineer", Duration: "3 years"}}
	req := parser.ExperienceRequirements{MinYears: 3}

	result := experienceMatch(entries, req)

	if result.Score != 0.8 {
		t.Errorf("score = %v, want 0.8 for exactly meeting the minimum", result.Score)
	}
	if !result.MeetsMinimum {
		t.Error("expected MeetsMinimum")
	}
	if result.EstimatedYears != 3 {
		t.Errorf("estimated = %d, want 3", result.EstimatedYears)
	}
}

func TestExperienceMatchWithinRange(t *testing.T) {
	entries := []parser.Experience{{Duration: "4 years"}}
	req := parser.ExperienceRequirements{MinYears: 3, MaxYears: 5}

	if got := experienceMatch(entries, req).Score; got != 1.0 {
		t.Errorf("score = %v, want 1.0 inside the stated range", got)
	}
}

func TestExperienceMatchWellOverMinimum(t *testing.T) {
	entries := []parser.Experience{{Duration: "8 years"}}
	req := parser.ExperienceRequirements{MinYears: 3}

	if got := experienceMatch(entries, req).Score; got != 0.9 {
		t.Errorf("score = %v, want 0.9 for exceeding minimum by more than two years", got)
	}
}

func TestExperienceMatchBelowMinimum(t *testing.T) {
	entries := []parser.Experience{{Duration: "2 years"}}
	req := parser.ExperienceRequirements{MinYears: 4}

	if got := experienceMatch(entries, req).Score; got != 0.5 {
		t.Errorf("score = %v, want 0.5 partial credit", got)
	}
}

func TestEstimateExperienceYears(t *testing.T) {
	tests := []struct {
		name    string
		entries []parser.Experience
		want    int
	}{
		{
			name:    "explicit years",
			entries: []parser.Experience{{Duration: "3 years"}, {Duration: "2 yrs"}},
			want:    5,
		},
		{
			name:    "months converted",
			entries: []parser.Experience{{Duration: "18 months"}},
			want:    1,
		},
		{
			name:    "senior title fallback",
			entries: []parser.Experience{{Title: "Senior Engineer"}},
			want:    3,
		},
		{
			name:    "junior title fallback",
			entries: []parser.Experience{{Title: "Junior Developer"}},
			want:    1,
		},
		{
			name:    "default title fallback",
			entries: []parser.Experience{{Title: "Engineer"}},
			want:    2,
		},
		{
			name:    "empty",
			entries: nil,
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateExperienceYears(tt.entries); got != tt.want {
				t.Errorf("estimateExperienceYears = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExperienceLevelClassification(t *testing.T) {
	tests := []struct {
		duration string
		want     string
	}{
		{"2 years", "entry_level"},
		{"4 years", "mid_level"},
		{"7 years", "senior_level"},
		{"12 years", "principal_level"},
	}
	for _, tt := range tests {
		entries := []parser.Experience{{Duration: tt.duration}}
		got := experienceMatch(entries, parser.ExperienceRequirements{}).Level
		if got != tt.want {
			t.Errorf("level for %s = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestCertificationMatch(t *testing.T) {
	certs := []string{"aws certified solutions architect"}
	jdSkills := []string{"python", "aws certified"}

	result := certificationMatch(certs, jdSkills)

	if result.Score != 1 {
		t.Errorf("score = %v, want 1 for substring containment", result.Score)
	}
	if len(result.Matches) != 1 || result.Matches[0].MatchType != "exact" {
		t.Errorf("matches = %+v, want one exact match", result.Matches)
	}
}

func TestCertificationMatchMissing(t *testing.T) {
	result := certificationMatch(nil, []string{"azure certification"})

	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
	if len(result.Missing) != 1 {
		t.Errorf("missing = %v, want the requirement reported", result.Missing)
	}
}

func TestCertificationMatchNoRequirements(t *testing.T) {
	result := certificationMatch([]string{"pmp"}, []string{"python", "django"})

	if result.Score != 0 {
		t.Errorf("score = %v, want 0 when posting has no certification requirements", result.Score)
	}
}

func TestHardMatcherFusionLinearity(t *testing.T) {
	m := NewHardMatcher(80)
	resume := parser.Resume{
		Skills:      []string{"python", "django", "postgresql", "git", "docker"},
		Education:   []parser.Education{{Degree: "Bachelor of Engineering, 2018"}},
		Experience:  []parser.Experience{{Title: "Engineer", Duration: "4 years"}},
		CleanedText: "python django postgresql experience building services",
	}
	jd := parser.JobDescription{
		RequiredSkills: []string{"python", "django", "fastapi", "postgresql", "git"},
		Qualifications: []string{"bachelor degree in engineering"},
		ExperienceReqs: parser.ExperienceRequirements{MinYears: 3, MaxYears: 5},
		CleanedText:    "python django developer with postgresql experience",
	}

	result := m.Calculate(resume, jd)

	expected := result.Exact.Score*weightExactSkills +
		result.Fuzzy.Score*weightFuzzySkills +
		result.Education.Score*weightEducation +
		result.Experience.Score*weightExperience +
		result.Certifications.Score*weightCertifications +
		result.TFIDFSimilarity*weightTFIDF
	if math.Abs(result.Score-expected) > 1e-9 {
		t.Errorf("fused score %v does not equal weighted combination %v", result.Score, expected)
	}
	if result.Score < 0 || result.Score > 1 {
		t.Errorf("fused score %v out of [0,1]", result.Score)
	}
}

func TestHardMatcherIdempotent(t *testing.T) {
	m := NewHardMatcher(80)
	resume := parser.Resume{
		Skills:      []string{"python", "docker"},
		CleanedText: "python services in docker containers",
	}
	jd := parser.JobDescription{
		RequiredSkills: []string{"python", "kubernetes"},
		CleanedText:    "python and kubernetes platform work",
	}

	first := m.Calculate(resume, jd)
	second := m.Calculate(resume, jd)

	if first.Score != second.Score {
		t.Errorf("scores differ across identical calls: %v vs %v", first.Score, second.Score)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("results differ across identical calls")
	}
}

func TestHardMatcherEmptyInputs(t *testing.T) {
	m := NewHardMatcher(80)
	result := m.Calculate(parser.Resume{}, parser.JobDescription{})

	if result.Err != "" {
		t.Errorf("unexpected error marker: %q", result.Err)
	}
	if result.Score < 0 || result.Score > 1 {
		t.Errorf("score %v out of [0,1]", result.Score)
	}
}
