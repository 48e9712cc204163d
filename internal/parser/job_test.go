package parser

import (
	"strings"
	"testing"
)

const sampleJD = `Position: Senior Backend Engineer
Company: Initech
Location: Hyderabad (Hybrid)

We are looking for a senior backend engineer to join the platform group.

Required skills: python, django, postgresql, docker
Nice to have: kubernetes, terraform

Qualifications
Bachelor degree in computer science or engineering
Minimum 3 years of experience with python

Responsibilities:
- design and build backend services
- review code and mentor junior engineers

Benefits:
- competitive salary and annual bonus
- flexible working hours`

func TestParseJobDescriptionTitle(t *testing.T) {
	doc := ParseJobDescription(sampleJD)

	if doc.JobTitle != "Senior Backend Engineer" {
		t.Errorf("title = %q, want Senior Backend Engineer", doc.JobTitle)
	}
}

func TestParseJobDescriptionTitleDefault(t *testing.T) {
	doc := ParseJobDescription("x\ny\nz")

	if doc.JobTitle != defaultJobTitle {
		t.Errorf("title = %q, want default %q", doc.JobTitle, defaultJobTitle)
	}
}

func TestParseJobDescriptionCompany(t *testing.T) {
	doc := ParseJobDescription(sampleJD)

	if doc.Company.Name != "Initech" {
		t.Errorf("company = %q, want Initech", doc.Company.Name)
	}
	if strings.Contains(doc.Company.Location, "(") {
		t.Errorf("location %q should have parenthetical stripped", doc.Company.Location)
	}
	if !strings.Contains(strings.ToLower(doc.Company.Location), "hyderabad") {
		t.Errorf("location = %q, want hyderabad", doc.Company.Location)
	}
}

func TestParseJobDescriptionSkills(t *testing.T) {
	doc := ParseJobDescription(sampleJD)

	required := map[string]bool{}
	for _, s := range doc.RequiredSkills {
		required[s] = true
	}
	for _, want := range []string{"python", "django", "postgresql", "docker"} {
		if !required[want] {
			t.Errorf("missing required skill %q in %v", want, doc.RequiredSkills)
		}
	}

	preferred := map[string]bool{}
	for _, s := range doc.PreferredSkills {
		preferred[s] = true
	}
	for _, want := range []string{"kubernetes", "terraform"} {
		if !preferred[want] {
			t.Errorf("missing preferred skill %q in %v", want, doc.PreferredSkills)
		}
	}
}

func TestParseJobDescriptionWholeDocumentSkillsUnioned(t *testing.T) {
	doc := ParseJobDescription("We use golang, react and redis daily.\nReact experience required.")

	found := map[string]bool{}
	for _, s := range doc.RequiredSkills {
		found[s] = true
	}
	if !found["react"] || !found["redis"] {
		t.Errorf("whole-document skills not unioned, got %v", doc.RequiredSkills)
	}
}

func TestParseJobDescriptionExperienceRequirements(t *testing.T) {
	doc := ParseJobDescription(sampleJD)

	if doc.ExperienceReqs.MinYears != 3 {
		t.Errorf("minYears = %d, want 3", doc.ExperienceReqs.MinYears)
	}
	if doc.ExperienceReqs.MaxYears != 0 {
		t.Errorf("maxYears = %d, want unset", doc.ExperienceReqs.MaxYears)
	}
}

func TestExtractExperienceRequirementsRange(t *testing.T) {
	req := extractExperienceRequirements("we need 3-5 years building distributed systems")

	if req.MinYears != 3 || req.MaxYears != 5 {
		t.Errorf("range parse = %d-%d, want 3-5", req.MinYears, req.MaxYears)
	}
}

func TestExtractExperienceRequirementsPlus(t *testing.T) {
	req := extractExperienceRequirements("8+ years required")

	if req.MinYears != 8 {
		t.Errorf("minYears = %d, want 8", req.MinYears)
	}
	if req.Level == "" {
		t.Error("expected a level match for 8+ years")
	}
}

func TestParseJobDescriptionSections(t *testing.T) {
	doc := ParseJobDescription(sampleJD)

	if len(doc.Responsibilities) == 0 {
		t.Error("expected responsibilities entries")
	}
	if len(doc.Benefits) == 0 {
		t.Error("expected benefits entries")
	}
	for _, r := range doc.Responsibilities {
		if len(r) <= 10 {
			t.Errorf("responsibility fragment too short: %q", r)
		}
	}
}

func TestParseJobDescriptionQualifications(t *testing.T) {
	doc := ParseJobDescription(sampleJD)

	if len(doc.Qualifications) == 0 {
		t.Fatal("expected qualifications entries")
	}
	foundDegree := false
	for _, q := range doc.Qualifications {
		if strings.Contains(q, "bachelor") {
			foundDegree = true
		}
	}
	if !foundDegree {
		t.Errorf("expected bachelor qualification in %v", doc.Qualifications)
	}
}

func TestParseJobDescriptionEmptyInput(t *testing.T) {
	doc := ParseJobDescription("")

	if doc.ParseError == "" {
		t.Error("expected parse error marker")
	}
	if doc.JobTitle != defaultJobTitle {
		t.Errorf("title = %q, want default", doc.JobTitle)
	}
	if doc.RequiredSkills == nil {
		t.Error("requiredSkills must be empty, not nil")
	}
}
