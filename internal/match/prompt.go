package match

import "fmt"

// promptInputLimit bounds how much of each document is sent to the model.
const promptInputLimit = 2000

const analysisPromptTemplate = `You are an expert resume evaluator. Analyze the following resume against the job description and provide a detailed assessment.

JOB DESCRIPTION:
%s

RESUME:
%s

Please provide:
1. Overall fit score (0-100)
2. Key strengths that match the job requirements
3. Missing skills or qualifications
4. Experience level assessment
5. Specific recommendations for improvement

Format your response as JSON with the following structure:
{
    "fit_score": <number>,
    "strengths": ["strength1", "strength2", ...],
    "missing_skills": ["skill1", "skill2", ...],
    "experience_assessment": "<assessment>",
    "recommendations": ["rec1", "rec2", ...]
}`

// buildAnalysisPrompt renders the qualitative-assessment prompt with both
// documents truncated to the input limit.
func buildAnalysisPrompt(jdText, resumeText string) string {
	return fmt.Sprintf(analysisPromptTemplate, truncate(jdText, promptInputLimit), truncate(resumeText, promptInputLimit))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
