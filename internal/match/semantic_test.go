package match

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"relevance-backend/internal/parser"
)

// fakeEmbedder returns fixed vectors per text and an empty result when
// unavailable, mirroring the provider contract.
type fakeEmbedder struct {
	vectors     map[string][]float32
	unavailable bool
	err         error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.unavailable {
		return nil, nil
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := f.vectors[text]; ok {
			out[i] = vec
		} else {
			out[i] = []float32{0.1, 0.1}
		}
	}
	return out, nil
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ int, _ float32) (string, error) {
	return f.response, f.err
}

func TestSemanticMatcherUnavailableEmbedder(t *testing.T) {
	m := NewSemanticMatcher(&fakeEmbedder{unavailable: true}, &fakeLLM{err: errors.New("down")}, 0.3)

	result := m.Calculate(context.Background(), parser.Resume{CleanedText: "python work"}, parser.JobDescription{
		CleanedText:    "python role",
		RequiredSkills: []string{"python"},
	})

	if result.OverallSimilarity != 0 {
		t.Errorf("overall similarity = %v, want 0", result.OverallSimilarity)
	}
	if len(result.Skills.Matches) != 0 || result.Skills.Score != 0 {
		t.Errorf("semantic skills = %+v, want empty with 0 score", result.Skills)
	}
	if result.Score != 0 {
		t.Errorf("fused score = %v, want 0", result.Score)
	}
}

func TestSemanticMatcherNilCollaborators(t *testing.T) {
	m := NewSemanticMatcher(nil, nil, 0.3)

	result := m.Calculate(context.Background(), parser.Resume{CleanedText: "text"}, parser.JobDescription{CleanedText: "text"})

	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
	if result.LLM.Err == "" {
		t.Error("expected error marker on llm analysis")
	}
}

func TestSemanticSkillExtraction(t *testing.T) {
	resumeText := "Built backend services in Python. Managed container deployments."
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"Built backend services in Python": {1, 0},
		"Managed container deployments.":   {0, 1},
		"python":                           {1, 0},
		"kubernetes":                       {0, 0.9},
		"cobol":                            {-1, 0},
	}}
	m := NewSemanticMatcher(emb, nil, 0.3)

	skills := m.extractSemanticSkills(context.Background(), resumeText, []string{"python", "kubernetes", "cobol"})

	if len(skills.Matches) != 2 {
		t.Fatalf("matches = %+v, want 2", skills.Matches)
	}
	if skills.Matches[0].JDSkill != "python" || skills.Matches[0].ResumeContext != "Built backend services in Python" {
		t.Errorf("unexpected first match %+v", skills.Matches[0])
	}
	// Two accepted similarities of 1.0 each over three required skills.
	if math.Abs(skills.Score-2.0/3.0) > 1e-6 {
		t.Errorf("score = %v, want 2/3", skills.Score)
	}
}

func TestSemanticSkillExtractionNoSkills(t *testing.T) {
	m := NewSemanticMatcher(&fakeEmbedder{}, nil, 0.3)

	skills := m.extractSemanticSkills(context.Background(), "some text", nil)
	if skills.Score != 0 || len(skills.Matches) != 0 {
		t.Errorf("skills = %+v, want empty", skills)
	}
}

func TestParseLLMResponseJSON(t *testing.T) {
	response := `Here is the assessment:
{
  "fit_score": 72,
  "strengths": ["solid python background"],
  "missing_skills": ["kubernetes"],
  "experience_assessment": "mid level",
  "recommendations": ["learn kubernetes"]
}`

	analysis := parseLLMResponse(response)

	if analysis.FitScore != 72 {
		t.Errorf("fit score = %d, want 72", analysis.FitScore)
	}
	if len(analysis.Strengths) != 1 || analysis.Strengths[0] != "solid python background" {
		t.Errorf("strengths = %v", analysis.Strengths)
	}
	if len(analysis.MissingSkills) != 1 || analysis.MissingSkills[0] != "kubernetes" {
		t.Errorf("missing = %v", analysis.MissingSkills)
	}
	if analysis.ExperienceAssessment != "mid level" {
		t.Errorf("assessment = %q", analysis.ExperienceAssessment)
	}
}

func TestParseLLMResponseFallback(t *testing.T) {
	response := `Fit score: 65
Strengths:
- python expertise
- database design
Missing skills:
- kubernetes
Experience: mid level`

	analysis := parseLLMResponse(response)

	if analysis.FitScore != 65 {
		t.Errorf("fit score = %d, want 65", analysis.FitScore)
	}
	if len(analysis.Strengths) != 2 {
		t.Errorf("strengths = %v, want 2 bullet items", analysis.Strengths)
	}
	if len(analysis.MissingSkills) != 1 || !strings.Contains(analysis.MissingSkills[0], "kubernetes") {
		t.Errorf("missing = %v", analysis.MissingSkills)
	}
}

func TestLLMAnalysisFailure(t *testing.T) {
	m := NewSemanticMatcher(nil, &fakeLLM{err: errors.New("quota exceeded")}, 0.3)

	analysis := m.llmAnalysis(context.Background(), "resume", "jd")

	if analysis.Err == "" {
		t.Error("expected error marker")
	}
	if analysis.FitScore != 0 {
		t.Errorf("fit score = %d, want 0", analysis.FitScore)
	}
	if analysis.Strengths == nil || analysis.MissingSkills == nil {
		t.Error("collections must be empty, not nil")
	}
}

func TestSemanticFusionWeights(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{}}
	llmClient := &fakeLLM{response: `{"fit_score": 50, "strengths": [], "missing_skills": [], "experience_assessment": "ok", "recommendations": []}`}
	m := NewSemanticMatcher(emb, llmClient, 0.3)

	result := m.Calculate(context.Background(), parser.Resume{CleanedText: "text one"}, parser.JobDescription{CleanedText: "text two"})

	expected := result.OverallSimilarity*weightOverallSimilarity +
		result.Skills.Score*weightSemanticSkills +
		float64(result.LLM.FitScore)/100*weightLLMAnalysis
	if math.Abs(result.Score-expected) > 1e-9 {
		t.Errorf("fused score %v does not equal weighted combination %v", result.Score, expected)
	}
}

func TestBuildSuggestionsOrderingAndCap(t *testing.T) {
	resume := parser.Resume{Projects: []parser.Project{}}
	jd := parser.JobDescription{
		RequiredSkills: []string{"aws certified", "python"},
		ExperienceReqs: parser.ExperienceRequirements{MinYears: 3},
	}
	analysis := LLMAnalysis{MissingSkills: []string{"kubernetes", "terraform", "helm", "argo"}}

	suggestions := buildSuggestions(resume, jd, analysis)

	if len(suggestions) != 5 {
		t.Fatalf("suggestions = %v, want exactly 5", suggestions)
	}
	if !strings.Contains(suggestions[0], "kubernetes, terraform, helm") {
		t.Errorf("first suggestion should list top three missing skills, got %q", suggestions[0])
	}
	if !strings.Contains(suggestions[1], "3+ years") {
		t.Errorf("second suggestion should mention the years requirement, got %q", suggestions[1])
	}
	if !strings.Contains(suggestions[2], "projects") {
		t.Errorf("third suggestion should mention projects, got %q", suggestions[2])
	}
	if !strings.Contains(suggestions[3], "aws certified") {
		t.Errorf("fourth suggestion should mention certifications, got %q", suggestions[3])
	}
}

func TestBuildSuggestionsGenericPadding(t *testing.T) {
	resume := parser.Resume{Projects: []parser.Project{{Name: "a"}, {Name: "b"}}}
	jd := parser.JobDescription{}

	suggestions := buildSuggestions(resume, jd, LLMAnalysis{})

	if len(suggestions) != 3 {
		t.Fatalf("suggestions = %v, want the 3 generic entries", suggestions)
	}
	for _, s := range suggestions {
		if s == "" {
			t.Error("empty suggestion")
		}
	}
}
