package draftclaim

import (
	"fmt"
	"strings"
)

// analysisSections defines the required report structure, in order.
var analysisSections = []struct {
	heading     string
	instruction string
}{
	{
		"### 1. Coverage Assessment",
		"How well do the claims cover the invention described in the disclosure? Identify which aspects are covered and which are not.",
	},
	{
		"### 2. Identified Gaps",
		"List specific aspects of the invention that are NOT covered by any claim.",
	},
	{
		"### 3. Strengths",
		"What are the strongest elements of the current claims?",
	},
	{
		"### 4. Weaknesses & Improvement Suggestions",
		"Identify weak or overly broad/narrow claims and suggest concrete improvements.",
	},
	{
		"### 5. Consistency Check",
		"Note any inconsistencies, mismatches, or contradictions between the disclosure and the claims.",
	},
}

// BuildAnalysisPrompt builds the one-shot prompt for a structured
// comparison of the patent claims against the invention disclosure.
func BuildAnalysisPrompt(req AnalysisRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a senior patent expert. Carefully compare the Invention Disclosure with the Patent Claims below and produce a structured analysis report.\n\n")
	sb.WriteString("## Invention Disclosure\n")
	sb.WriteString(req.Disclosure)
	if strings.TrimSpace(req.AdditionalInfo) != "" {
		sb.WriteString("\n\n## Additional Information\n")
		sb.WriteString(req.AdditionalInfo)
	}
	sb.WriteString("\n\n## Patent Claims\n")
	sb.WriteString(req.Claims)
	sb.WriteString("\n\n---\n\nProvide a detailed analysis under these headings:\n\n")
	for _, s := range analysisSections {
		fmt.Fprintf(&sb, "%s\n%s\n\n", s.heading, s.instruction)
	}
	sb.WriteString("Be specific; reference exact claim language and disclosure sections where relevant.")
	return sb.String()
}

// BuildAnswerSystemPrompt builds the system message that grounds answer
// generation in the invention disclosure. Every question in a session
// shares the same system message.
func BuildAnswerSystemPrompt(req AnswerRequest) string {
	var extra string
	if strings.TrimSpace(req.AdditionalInfo) != "" {
		extra = "\n\nAdditional Information:\n" + req.AdditionalInfo
	}
	return fmt.Sprintf(`You are a patent expert helping to verify patent claims against an Invention Disclosure.

Invention Disclosure Document:
---
%s%s
---

Your task is to answer questions about the patent claims based solely on the invention disclosure above. Be precise, specific, and cite relevant parts of the disclosure where applicable.`, req.Disclosure, extra)
}

// BuildAnswerUserPrompt builds the user message for one verification
// question. Reviewer context is appended when provided; on a retry the
// rejected answer is included so the model improves on it instead of
// repeating it.
func BuildAnswerUserPrompt(req AnswerRequest) string {
	var sb strings.Builder
	sb.WriteString("Question to answer:\n")
	sb.WriteString(req.Question)
	if strings.TrimSpace(req.UserContext) != "" {
		sb.WriteString("\n\nAdditional context provided by reviewer:\n")
		sb.WriteString(req.UserContext)
	}
	if strings.TrimSpace(req.RejectedAnswer) != "" {
		sb.WriteString("\n\nThe reviewer rejected the following answer; provide a better one:\n")
		sb.WriteString(req.RejectedAnswer)
	}
	sb.WriteString("\n\nPlease provide a thorough, well-structured answer.")
	return sb.String()
}
