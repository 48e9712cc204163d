package parser

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
Senior Software Engineer
jane.doe@example.com | 415-555-1234
San Francisco, CA

Work Experience
Senior Backend Engineer at Initech
Built Python services with Django and PostgreSQL, deployed on AWS with Docker.

Projects
Inventory tracking platform built with FastAPI and Redis.

Education
Bachelor of Technology in Computer Science, 2016

Certifications
AWS Certified Solutions Architect
Scrum`

func TestParseResumeContactInfo(t *testing.T) {
	doc := ParseResume(sampleResume)

	if doc.Contact.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", doc.Contact.Name)
	}
	if doc.Contact.Email != "jane.doe@example.com" {
		t.Errorf("email = %q", doc.Contact.Email)
	}
	if doc.Contact.Phone != "415-555-1234" {
		t.Errorf("phone = %q", doc.Contact.Phone)
	}
}

func TestParseResumeSkills(t *testing.T) {
	doc := ParseResume(sampleResume)

	want := []string{"aws", "django", "docker", "fastapi", "postgresql", "python", "redis"}
	got := map[string]bool{}
	for _, s := range doc.Skills {
		got[s] = true
	}
	for _, s := range want {
		if !got[s] {
			t.Errorf("missing skill %q in %v", s, doc.Skills)
		}
	}
	for _, s := range doc.Skills {
		if s != strings.ToLower(s) {
			t.Errorf("skill %q is not lower-cased", s)
		}
	}
}

func TestParseResumeEducation(t *testing.T) {
	doc := ParseResume(sampleResume)

	if len(doc.Education) == 0 {
		t.Fatal("expected at least one education entry")
	}
	if !strings.Contains(strings.ToLower(doc.Education[0].Degree), "bachelor") {
		t.Errorf("degree = %q, want bachelor entry", doc.Education[0].Degree)
	}
}

func TestParseResumeExperienceAndProjects(t *testing.T) {
	doc := ParseResume(sampleResume)

	if len(doc.Experience) == 0 {
		t.Fatal("expected an experience entry")
	}
	if len(doc.Projects) == 0 {
		t.Fatal("expected a project entry")
	}
}

func TestParseResumeCertifications(t *testing.T) {
	doc := ParseResume(sampleResume)

	foundAWS := false
	foundScrum := false
	for _, c := range doc.Certifications {
		if strings.Contains(c, "aws") {
			foundAWS = true
		}
		if c == "scrum" {
			foundScrum = true
		}
	}
	if !foundAWS {
		t.Errorf("expected aws certification in %v", doc.Certifications)
	}
	if !foundScrum {
		t.Errorf("expected scrum in %v", doc.Certifications)
	}
}

func TestParseResumeEmptyInput(t *testing.T) {
	doc := ParseResume("   \n  ")

	if doc.ParseError == "" {
		t.Error("expected parse error marker for empty input")
	}
	if doc.Skills == nil || doc.Education == nil || doc.Experience == nil {
		t.Error("collections must be empty, not nil")
	}
	if len(doc.Skills) != 0 {
		t.Errorf("skills should be empty, got %v", doc.Skills)
	}
}

func TestCleanResumeTextStripsBoilerplate(t *testing.T) {
	cleaned := CleanResumeText("Resume\nJane Doe\nPage 1 of 2\nConfidential\nPython developer")

	lower := strings.ToLower(cleaned)
	for _, banned := range []string{"page 1 of 2", "confidential"} {
		if strings.Contains(lower, banned) {
			t.Errorf("boilerplate %q not stripped from %q", banned, cleaned)
		}
	}
	if !strings.Contains(cleaned, "Jane Doe") {
		t.Errorf("content lost during cleaning: %q", cleaned)
	}
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	cleaned := CleanResumeText("a    b\t\tc\n\n\n\nd")

	if strings.Contains(cleaned, "  ") {
		t.Errorf("space runs not collapsed: %q", cleaned)
	}
	if strings.Contains(cleaned, "\n\n") {
		t.Errorf("newline runs not collapsed: %q", cleaned)
	}
}
