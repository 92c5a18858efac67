package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
)

// Run executes the questions command.
func (c *QuestionsCmd) Run(deps *Dependencies) error {
	doc, err := deps.Reader.ReadDocument(deps.Ctx, c.Claims, draftclaim.RoleClaims)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	questions := draftclaim.QuestionsFromComments(doc.Comments)
	if len(questions) == 0 {
		fmt.Fprintf(deps.Stdout, "No questions found. Add reviewer comments to %s and try again.\n", c.Claims)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Questions in %s (%d total):\n\n", c.Claims, len(questions))
	for _, q := range questions {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", q.Index+1, q.Text)
		if q.Anchor != "" {
			fmt.Fprintf(deps.Stdout, "     claim: %s\n", q.Anchor)
		}
	}

	return nil
}
