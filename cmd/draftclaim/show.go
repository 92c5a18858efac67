package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if draftclaim.ErrorCode(err) == draftclaim.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'draftclaim history' to see archived runs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s (%s)\n", run.ID, run.Kind)
	fmt.Fprintf(deps.Stdout, "  Model:      %s\n", run.Model)
	fmt.Fprintf(deps.Stdout, "  Created:    %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  Disclosure: %s (%s)\n", run.DisclosurePath, run.DisclosureHash)
	fmt.Fprintf(deps.Stdout, "  Claims:     %s (%s)\n", run.ClaimsPath, run.ClaimsHash)
	if run.ReportPath != "" {
		fmt.Fprintf(deps.Stdout, "  Report:     %s\n", run.ReportPath)
	}

	if run.Kind != draftclaim.RunVerification {
		return nil
	}

	fmt.Fprintf(deps.Stdout, "  Approved:   %d of %d\n", run.ApprovedCount, run.QuestionCount)

	answers, err := deps.Answers.FindAnswers(deps.Ctx, draftclaim.AnswerFilter{RunID: &run.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	for _, a := range answers {
		fmt.Fprintf(deps.Stdout, "\n%d. %s\n", a.QuestionIndex+1, a.Question)
		if a.Context != "" {
			fmt.Fprintf(deps.Stdout, "   Context: %s\n", a.Context)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n", a.Answer)
	}

	return nil
}
