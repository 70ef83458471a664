package openai

import (
	"fmt"
	"strings"

	"github.com/candela-systems/scholarmatch/core"
)

const analysisPromptTemplate = `Analyze the following research interests and extract key themes, methodologies, and specific areas.

Output ONLY a valid JSON object. Do not include any preamble, explanation, greeting, or acknowledgment.
Start your response directly with the opening brace { and end with the closing brace }.
The object must have exactly these fields, each a JSON array of strings:

- primary_areas: main research areas
- methodologies: research methodologies mentioned
- keywords: important keywords
- specific_topics: specific research topics
- interdisciplinary_connections: related fields

If a field has no content, use an empty array. No trailing commas, no extra keys, no text outside the object.

Research Interests: %s`

const reasonsPromptTemplate = `Given a researcher's profile and a user's stated interests, provide 2-3 specific, concise reasons why they would be a good match.
Focus on concrete research areas, methodologies, or topics that align.

Output ONLY a valid JSON array of strings. Start your response with [ and end with ]. No text outside the array.

Profile:
Name: %s
Title: %s
Department: %s
Research Interests: %s
Bio: %s

User Interests: %s

Similarity Score: %.3f`

// promptBioLimit bounds how much bio text goes into the reasons prompt.
const promptBioLimit = 500

// buildAnalysisPrompt creates the query analysis prompt.
func buildAnalysisPrompt(rawText string) string {
	return fmt.Sprintf(analysisPromptTemplate, rawText)
}

// buildReasonsPrompt creates the match explanation prompt.
func buildReasonsPrompt(profile *core.Profile, analysis *core.QueryAnalysis, score float64) string {
	return fmt.Sprintf(reasonsPromptTemplate,
		profile.Name,
		profile.Title,
		profile.Department,
		strings.Join(profile.ResearchInterests, ", "),
		truncate(profile.Bio, promptBioLimit),
		analysis.RawText,
		score)
}

// truncate limits s to max characters, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
