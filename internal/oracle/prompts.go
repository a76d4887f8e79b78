package oracle

import "strings"

// prompts.go keeps the classification prompt in one place so its wording can
// be tuned without touching the provider clients.

// classificationPrompt asks the model to pick the most relevant label from a
// finite candidate set. The model replies with free text, so callers still
// need to resolve the reply against the candidates.
func classificationPrompt(text string, candidates []string) string {
	var b strings.Builder
	b.WriteString("Classify the following input into one of the provided candidate labels:\n\n")
	b.WriteString("Input: ")
	b.WriteString(text)
	b.WriteString("\n\nCandidate Labels: ")
	b.WriteString(strings.Join(candidates, ", "))
	b.WriteString("\n\nAnswer with the most relevant candidate label.")
	return b.String()
}
