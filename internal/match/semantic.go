package match

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"relevance-backend/internal/embedding"
	"relevance-backend/internal/llm"
	"relevance-backend/internal/parser"
)

// Semantic fusion weights. They sum to 1.0.
const (
	weightOverallSimilarity = 0.3
	weightSemanticSkills    = 0.4
	weightLLMAnalysis       = 0.3
)

// DefaultSemanticThreshold is the cosine similarity above which a skill
// counts as semantically present in the resume.
const DefaultSemanticThreshold = 0.3

const (
	llmMaxTokens   = 1000
	llmTemperature = 0.3
)

var (
	firstInteger = regexp.MustCompile(`(\d+)`)
	bulletLine   = regexp.MustCompile(`[\x{2022}\-\*]\s*([^\n]+)`)
)

// SemanticMatcher scores a resume/posting pair with embedding similarity
// and a generative-model assessment. Both collaborators are injected; a
// nil collaborator degrades that signal to zero instead of failing.
type SemanticMatcher struct {
	embedder  embedding.Embedder
	generator llm.Client
	threshold float64
}

// NewSemanticMatcher builds a matcher around the given collaborators.
// Thresholds outside (0,1) fall back to the default.
func NewSemanticMatcher(embedder embedding.Embedder, generator llm.Client, threshold float64) *SemanticMatcher {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultSemanticThreshold
	}
	return &SemanticMatcher{embedder: embedder, generator: generator, threshold: threshold}
}

// Calculate computes embedding and LLM signals and fuses them. External
// failures degrade the affected signal to zero; nothing escapes this
// boundary as an error.
func (m *SemanticMatcher) Calculate(ctx context.Context, resume parser.Resume, jd parser.JobDescription) SemanticResult {
	overall := m.overallSimilarity(ctx, resume.CleanedText, jd.CleanedText)
	skills := m.extractSemanticSkills(ctx, resume.CleanedText, jd.RequiredSkills)
	analysis := m.llmAnalysis(ctx, resume.CleanedText, jd.CleanedText)
	suggestions := buildSuggestions(resume, jd, analysis)

	score := overall*weightOverallSimilarity +
		skills.Score*weightSemanticSkills +
		float64(analysis.FitScore)/100*weightLLMAnalysis

	return SemanticResult{
		Score:             score,
		OverallSimilarity: overall,
		Skills:            skills,
		LLM:               analysis,
		Suggestions:       suggestions,
	}
}

// overallSimilarity embeds both documents and returns their cosine
// similarity, or 0 when embeddings are unavailable.
func (m *SemanticMatcher) overallSimilarity(ctx context.Context, resumeText, jdText string) float64 {
	vectors := m.embed(ctx, []string{resumeText, jdText})
	if len(vectors) != 2 {
		return 0
	}
	return embedding.CosineSimilarity(vectors[0], vectors[1])
}

// extractSemanticSkills embeds resume sentences and required skills in one
// batch and matches each skill to its most similar sentence.
func (m *SemanticMatcher) extractSemanticSkills(ctx context.Context, resumeText string, jdSkills []string) SemanticSkills {
	result := SemanticSkills{Matches: []SemanticSkillPair{}}
	if len(jdSkills) == 0 {
		return result
	}

	sentences := splitSentences(resumeText)
	if len(sentences) == 0 {
		return result
	}

	vectors := m.embed(ctx, append(append([]string{}, sentences...), jdSkills...))
	if len(vectors) != len(sentences)+len(jdSkills) {
		return result
	}
	sentenceVectors := vectors[:len(sentences)]
	skillVectors := vectors[len(sentences):]

	var totalSimilarity float64
	for i, skill := range jdSkills {
		bestIdx := -1
		bestSim := -1.0
		for j, sentenceVec := range sentenceVectors {
			sim := embedding.CosineSimilarity(skillVectors[i], sentenceVec)
			if sim > bestSim {
				bestSim = sim
				bestIdx = j
			}
		}
		if bestIdx >= 0 && bestSim > m.threshold {
			result.Matches = append(result.Matches, SemanticSkillPair{
				JDSkill:       skill,
				ResumeContext: sentences[bestIdx],
				Similarity:    bestSim,
			})
			totalSimilarity += bestSim
		}
	}

	result.Score = totalSimilarity / float64(len(jdSkills))
	return result
}

// embed calls the embedder and flattens every failure mode (nil embedder,
// transport error, empty response) into a nil result.
func (m *SemanticMatcher) embed(ctx context.Context, texts []string) [][]float32 {
	if m.embedder == nil {
		return nil
	}
	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return nil
	}
	return vectors
}

// llmAnalysis prompts the generative model and parses its assessment.
// Parse failures fall back to regex extraction; call failures yield a
// zeroed analysis with an error marker.
func (m *SemanticMatcher) llmAnalysis(ctx context.Context, resumeText, jdText string) LLMAnalysis {
	empty := LLMAnalysis{
		Strengths:            []string{},
		MissingSkills:        []string{},
		ExperienceAssessment: "Unable to assess",
		Recommendations:      []string{},
	}
	if m.generator == nil {
		empty.Err = "generative model not configured"
		return empty
	}

	prompt := buildAnalysisPrompt(jdText, resumeText)
	response, err := m.generator.Generate(ctx, prompt, llmMaxTokens, llmTemperature)
	if err != nil {
		empty.Err = fmt.Sprintf("generate: %v", err)
		return empty
	}
	return parseLLMResponse(response)
}

// parseLLMResponse extracts the JSON object between the first '{' and the
// last '}'. When that fails it falls back to pulling the first integer as
// the fit score and bullet lines from the strengths/missing sections.
func parseLLMResponse(response string) LLMAnalysis {
	analysis := LLMAnalysis{
		Strengths:            []string{},
		MissingSkills:        []string{},
		ExperienceAssessment: "Unable to assess",
		Recommendations:      []string{},
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		var parsed struct {
			FitScore             json.Number `json:"fit_score"`
			Strengths            []string    `json:"strengths"`
			MissingSkills        []string    `json:"missing_skills"`
			ExperienceAssessment string      `json:"experience_assessment"`
			Recommendations      []string    `json:"recommendations"`
		}
		if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err == nil {
			if fit, err := parsed.FitScore.Int64(); err == nil {
				analysis.FitScore = int(fit)
			} else if fitFloat, err := parsed.FitScore.Float64(); err == nil {
				analysis.FitScore = int(fitFloat)
			}
			if parsed.Strengths != nil {
				analysis.Strengths = parsed.Strengths
			}
			if parsed.MissingSkills != nil {
				analysis.MissingSkills = parsed.MissingSkills
			}
			if parsed.ExperienceAssessment != "" {
				analysis.ExperienceAssessment = parsed.ExperienceAssessment
			}
			if parsed.Recommendations != nil {
				analysis.Recommendations = parsed.Recommendations
			}
			return analysis
		}
	}

	return parseLLMResponseLoose(response, analysis)
}

func parseLLMResponseLoose(response string, analysis LLMAnalysis) LLMAnalysis {
	if match := firstInteger.FindStringSubmatch(response); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			analysis.FitScore = n
		}
	}

	lower := strings.ToLower(response)
	if idx := strings.Index(lower, "strengths"); idx >= 0 {
		section := lower[idx+len("strengths"):]
		if cut := strings.Index(section, "missing"); cut >= 0 {
			section = section[:cut]
		}
		analysis.Strengths = bulletItems(section)
	}
	if idx := strings.Index(lower, "missing"); idx >= 0 {
		section := lower[idx+len("missing"):]
		if cut := strings.Index(section, "experience"); cut >= 0 {
			section = section[:cut]
		}
		analysis.MissingSkills = bulletItems(section)
	}
	return analysis
}

func bulletItems(section string) []string {
	items := []string{}
	for _, match := range bulletLine.FindAllStringSubmatch(section, -1) {
		item := strings.TrimSpace(match[1])
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitSentences breaks text on sentence boundaries, dropping empties.
func splitSentences(text string) []string {
	parts := strings.Split(text, ". ")
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// buildSuggestions assembles at most five improvement suggestions, most
// specific first, padded with generic resume advice.
func buildSuggestions(resume parser.Resume, jd parser.JobDescription, analysis LLMAnalysis) []string {
	suggestions := []string{}

	if len(analysis.MissingSkills) > 0 {
		top := analysis.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		suggestions = append(suggestions, fmt.Sprintf("Consider learning or gaining experience with: %s", strings.Join(top, ", ")))
	}

	if jd.ExperienceReqs.MinYears > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Gain more experience in relevant technologies to meet the %d+ years requirement", jd.ExperienceReqs.MinYears))
	}

	if len(resume.Projects) < 2 {
		suggestions = append(suggestions, "Add more relevant projects to showcase your technical skills")
	}

	certRequirements := []string{}
	for _, skill := range jd.RequiredSkills {
		if containsAnyKeyword(strings.ToLower(skill), []string{"aws", "azure", "gcp", "certified", "certification"}) {
			certRequirements = append(certRequirements, skill)
		}
	}
	if len(certRequirements) > 0 {
		if len(certRequirements) > 2 {
			certRequirements = certRequirements[:2]
		}
		suggestions = append(suggestions, fmt.Sprintf("Consider obtaining certifications in: %s", strings.Join(certRequirements, ", ")))
	}

	suggestions = append(suggestions,
		"Tailor your resume to highlight relevant experience for this specific role",
		"Include quantifiable achievements and metrics in your experience descriptions",
		"Ensure your contact information and professional summary are up to date",
	)

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}
