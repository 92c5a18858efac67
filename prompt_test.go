package draftclaim_test

import (
	"strings"
	"testing"

	"github.com/siddhant230/draftclaim"
	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes both documents and the section headings", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnalysisPrompt(draftclaim.AnalysisRequest{
			Disclosure: "A smart water bottle.",
			Claims:     "Claim 1. A bottle comprising a sensor.",
		})

		assert.Contains(t, prompt, "## Invention Disclosure\nA smart water bottle.")
		assert.Contains(t, prompt, "## Patent Claims\nClaim 1. A bottle comprising a sensor.")
		assert.Contains(t, prompt, "### 1. Coverage Assessment")
		assert.Contains(t, prompt, "### 2. Identified Gaps")
		assert.Contains(t, prompt, "### 3. Strengths")
		assert.Contains(t, prompt, "### 4. Weaknesses & Improvement Suggestions")
		assert.Contains(t, prompt, "### 5. Consistency Check")
		assert.True(t, strings.HasSuffix(prompt, "where relevant."))
		assert.NotContains(t, prompt, "## Additional Information")
	})

	t.Run("includes additional information when present", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnalysisPrompt(draftclaim.AnalysisRequest{
			Disclosure:     "A smart water bottle.",
			AdditionalInfo: "Prior art search results.",
			Claims:         "Claim 1.",
		})

		assert.Contains(t, prompt, "## Additional Information\nPrior art search results.")
	})
}

func TestBuildAnswerSystemPrompt(t *testing.T) {
	t.Parallel()

	t.Run("grounds answers in the disclosure", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnswerSystemPrompt(draftclaim.AnswerRequest{
			Disclosure: "A smart water bottle.",
		})

		assert.Contains(t, prompt, "Invention Disclosure Document:\n---\nA smart water bottle.\n---")
		assert.Contains(t, prompt, "based solely on the invention disclosure above")
		assert.NotContains(t, prompt, "Additional Information:")
	})

	t.Run("appends additional information inside the delimiters", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnswerSystemPrompt(draftclaim.AnswerRequest{
			Disclosure:     "A smart water bottle.",
			AdditionalInfo: "Prior art.",
		})

		assert.Contains(t, prompt, "A smart water bottle.\n\nAdditional Information:\nPrior art.\n---")
	})
}

func TestBuildAnswerUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("question only", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnswerUserPrompt(draftclaim.AnswerRequest{
			Question: "Does claim 1 cover the sensor?",
		})

		assert.True(t, strings.HasPrefix(prompt, "Question to answer:\nDoes claim 1 cover the sensor?"))
		assert.True(t, strings.HasSuffix(prompt, "Please provide a thorough, well-structured answer."))
		assert.NotContains(t, prompt, "Additional context provided by reviewer:")
		assert.NotContains(t, prompt, "rejected")
	})

	t.Run("includes reviewer context", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnswerUserPrompt(draftclaim.AnswerRequest{
			Question:    "Does claim 1 cover the sensor?",
			UserContext: "Consider the neck placement.",
		})

		assert.Contains(t, prompt, "Additional context provided by reviewer:\nConsider the neck placement.")
	})

	t.Run("includes the rejected answer on retry", func(t *testing.T) {
		t.Parallel()

		prompt := draftclaim.BuildAnswerUserPrompt(draftclaim.AnswerRequest{
			Question:       "Does claim 1 cover the sensor?",
			RejectedAnswer: "It probably does.",
		})

		assert.Contains(t, prompt, "rejected the following answer")
		assert.Contains(t, prompt, "It probably does.")
	})
}
