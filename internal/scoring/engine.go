package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"relevance-backend/internal/match"
	"relevance-backend/internal/shared/telemetry"
)

// Verdict thresholds are fixed design constants, not configuration.
const (
	verdictHighThreshold   = 0.8
	verdictMediumThreshold = 0.6
)

// Default fusion weights when none are configured.
const (
	DefaultHardWeight     = 0.4
	DefaultSemanticWeight = 0.6
)

// MissingElements buckets everything a resume lacks relative to the
// posting. Projects and Experience are reserved buckets that no current
// signal populates.
type MissingElements struct {
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Projects       []string `json:"projects"`
	Experience     []string `json:"experience"`
}

// ScoreBreakdown records every input to the final score.
type ScoreBreakdown struct {
	HardMatchScore     float64 `json:"hardMatchScore"`
	SemanticMatchScore float64 `json:"semanticMatchScore"`
	HardMatchWeight    float64 `json:"hardMatchWeight"`
	SemanticWeight     float64 `json:"semanticMatchWeight"`
	FinalScore         float64 `json:"finalScore"`
	PercentageScore    int     `json:"percentageScore"`
}

// Analysis is the terminal artifact of one evaluation. It is constructed
// once and never mutated afterwards.
type Analysis struct {
	FinalScore           float64         `json:"finalScore"`
	PercentageScore      int             `json:"relevanceScore"`
	Verdict              string          `json:"verdict"`
	Breakdown            ScoreBreakdown  `json:"scoreBreakdown"`
	Missing              MissingElements `json:"missingElements"`
	Suggestions          []string        `json:"improvementSuggestions"`
	Strengths            []string        `json:"strengths"`
	ExperienceAssessment string          `json:"experienceAssessment"`
	ConfidenceScore      float64         `json:"confidenceScore"`
	Timestamp            time.Time       `json:"analysisTimestamp"`
}

// Engine fuses hard and semantic scores into a final verdict. Weights are
// normalized once at construction; the engine is stateless afterwards and
// safe for concurrent use.
type Engine struct {
	hardWeight     float64
	semanticWeight float64
}

// NewEngine builds an engine from the configured weight pair. Weights
// that do not sum to 1.0 are renormalized with a logged warning;
// non-positive pairs fall back to the defaults.
func NewEngine(hardWeight, semanticWeight float64) *Engine {
	if hardWeight <= 0 && semanticWeight <= 0 {
		hardWeight = DefaultHardWeight
		semanticWeight = DefaultSemanticWeight
	}
	total := hardWeight + semanticWeight
	if total != 1.0 {
		adjustedHard := hardWeight / total
		adjustedSemantic := semanticWeight / total
		telemetry.Warn("scoring.weights_renormalized", map[string]any{
			"configured_hard":     hardWeight,
			"configured_semantic": semanticWeight,
			"adjusted_hard":       adjustedHard,
			"adjusted_semantic":   adjustedSemantic,
		})
		hardWeight = adjustedHard
		semanticWeight = adjustedSemantic
	}
	return &Engine{hardWeight: hardWeight, semanticWeight: semanticWeight}
}

// Weights reports the normalized weight pair.
func (e *Engine) Weights() (hard, semantic float64) {
	return e.hardWeight, e.semanticWeight
}

// Analyze fuses both match results into the final analysis record.
func (e *Engine) Analyze(hard match.HardResult, semantic match.SemanticResult) Analysis {
	finalScore := clamp01(hard.Score*e.hardWeight + semantic.Score*e.semanticWeight)
	percentage := int(finalScore * 100)

	strengths := semantic.LLM.Strengths
	if strengths == nil {
		strengths = []string{}
	}
	suggestions := semantic.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	assessment := semantic.LLM.ExperienceAssessment
	if assessment == "" {
		assessment = "Not assessed"
	}

	return Analysis{
		FinalScore:      finalScore,
		PercentageScore: percentage,
		Verdict:         Verdict(finalScore),
		Breakdown: ScoreBreakdown{
			HardMatchScore:     hard.Score,
			SemanticMatchScore: semantic.Score,
			HardMatchWeight:    e.hardWeight,
			SemanticWeight:     e.semanticWeight,
			FinalScore:         finalScore,
			PercentageScore:    percentage,
		},
		Missing:              missingElements(hard, semantic),
		Suggestions:          suggestions,
		Strengths:            strengths,
		ExperienceAssessment: assessment,
		ConfidenceScore:      Confidence(hard, semantic),
		Timestamp:            time.Now().UTC(),
	}
}

// Verdict maps a final score to its three-tier classification.
func Verdict(finalScore float64) string {
	switch {
	case finalScore >= verdictHighThreshold:
		return "High"
	case finalScore >= verdictMediumThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

// missingElements merges missing skills from exact matching, unmatched
// qualifications, and LLM-reported gaps into the skills bucket, keeping
// certifications separate.
func missingElements(hard match.HardResult, semantic match.SemanticResult) MissingElements {
	skills := map[string]struct{}{}
	for _, s := range hard.Exact.MissingSkills {
		skills[s] = struct{}{}
	}
	for _, q := range hard.Education.MissingQualifications {
		skills[q] = struct{}{}
	}
	for _, s := range semantic.LLM.MissingSkills {
		skills[s] = struct{}{}
	}

	certs := map[string]struct{}{}
	for _, c := range hard.Certifications.Missing {
		certs[c] = struct{}{}
	}

	return MissingElements{
		Skills:         sortedKeys(skills),
		Certifications: sortedKeys(certs),
		Projects:       []string{},
		Experience:     []string{},
	}
}

// Confidence estimates how trustworthy the evaluation is: agreement
// between the two matchers plus presence of supporting signals, capped at
// 1.0. Degraded inputs lower confidence instead of surfacing an error.
func Confidence(hard match.HardResult, semantic match.SemanticResult) float64 {
	var confidence float64

	diff := hard.Score - semantic.Score
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < 0.2:
		confidence += 0.3
	case diff < 0.4:
		confidence += 0.2
	default:
		confidence += 0.1
	}

	if len(hard.Exact.Matches) > 0 {
		confidence += 0.2
	}
	if len(semantic.Skills.Matches) > 0 {
		confidence += 0.2
	}
	if semantic.LLM.FitScore > 0 {
		confidence += 0.3
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// Summary renders a plain-text report of the analysis. Presentational
// only; nothing downstream parses it.
func Summary(analysis Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EVALUATION SUMMARY\n=================\n\n")
	fmt.Fprintf(&b, "Relevance Score: %d/100\n", analysis.PercentageScore)
	fmt.Fprintf(&b, "Fit Verdict: %s\n\n", analysis.Verdict)

	b.WriteString("STRENGTHS:\n")
	writeBullets(&b, analysis.Strengths, 3, "No specific strengths identified")

	b.WriteString("\nMISSING ELEMENTS:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", joinOrNone(analysis.Missing.Skills, 3))
	fmt.Fprintf(&b, "- Certifications: %s\n", joinOrNone(analysis.Missing.Certifications, 2))

	b.WriteString("\nRECOMMENDATIONS:\n")
	writeBullets(&b, analysis.Suggestions, 3, "No specific recommendations available")

	return strings.TrimSpace(b.String())
}

func writeBullets(b *strings.Builder, items []string, limit int, fallback string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", fallback)
		return
	}
	if len(items) > limit {
		items = items[:limit]
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func joinOrNone(items []string, limit int) string {
	if len(items) == 0 {
		return "None identified"
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
