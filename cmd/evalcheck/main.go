package main

// Offline pipeline check: parses a resume and a job description from local
// files, runs the matchers and scoring engine, and prints the analysis as
// JSON. Embeddings and LLM analysis are only used when API keys are set.
//
//   go run ./cmd/evalcheck -resume resume.pdf -jd jd.txt

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"relevance-backend/internal/embedding"
	geminiembed "relevance-backend/internal/embedding/gemini"
	openaiembed "relevance-backend/internal/embedding/openai"
	"relevance-backend/internal/extract"
	"relevance-backend/internal/llm"
	geminillm "relevance-backend/internal/llm/gemini"
	openaillm "relevance-backend/internal/llm/openai"
	"relevance-backend/internal/match"
	"relevance-backend/internal/parser"
	"relevance-backend/internal/scoring"
	"relevance-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or txt)")
	jdPath := flag.String("jd", "", "Path to job description file")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	if strings.TrimSpace(*jdPath) == "" {
		exitErr("jd path is required")
	}

	ctx := context.Background()

	resumeText, err := readDocument(ctx, *resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	jdText, err := readDocument(ctx, *jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}

	resumeDoc := parser.ParseResume(resumeText)
	jdDoc := parser.ParseJobDescription(jdText)

	hard := match.NewHardMatcher(float64(cfg.FuzzyMatchThreshold)).Calculate(resumeDoc, jdDoc)

	embedder := buildEmbedder(ctx, cfg)
	generator := buildLLM(ctx, cfg)
	semantic := match.NewSemanticMatcher(embedder, generator, cfg.SemanticThreshold).Calculate(ctx, resumeDoc, jdDoc)

	engine := scoring.NewEngine(cfg.HardMatchWeight, cfg.SemanticMatchWeight)
	analysis := engine.Analyze(hard, semantic)

	out := map[string]any{
		"resume":         resumeDoc,
		"jobDescription": jdDoc,
		"hardMatch":      hard,
		"semanticMatch":  semantic,
		"analysis":       analysis,
		"summary":        scoring.Summary(analysis),
	}

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("marshal output: %v", err))
	}

	if strings.TrimSpace(*outPath) != "" {
		if err := os.WriteFile(*outPath, payload, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	fmt.Println(string(payload))
}

func readDocument(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mimeType, err := mimeFromExt(path)
	if err != nil {
		return "", err
	}
	return extract.ExtractTextFromBytes(ctx, data, mimeType, filepath.Base(path))
}

func mimeFromExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf", nil
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	case ".txt", ".md":
		return "text/plain", nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

func buildEmbedder(ctx context.Context, cfg config.Config) embedding.Embedder {
	switch cfg.EmbeddingProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		embedder, err := openaiembed.NewEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		if err != nil {
			exitErr(err.Error())
		}
		return embedder
	default:
		if cfg.GoogleAPIKey == "" {
			return nil
		}
		embedder, err := geminiembed.NewEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
		if err != nil {
			exitErr(err.Error())
		}
		return embedder
	}
}

func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		client, err := openaillm.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			exitErr(err.Error())
		}
		return client
	default:
		if cfg.GoogleAPIKey == "" {
			return nil
		}
		client, err := geminillm.NewClient(ctx, cfg.GoogleAPIKey, cfg.LLMModel)
		if err != nil {
			exitErr(err.Error())
		}
		return client
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
