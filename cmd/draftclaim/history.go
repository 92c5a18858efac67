package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := draftclaim.RunFilter{Limit: c.Limit}
	if c.Kind != "" {
		kind := draftclaim.RunKind(c.Kind)
		if kind != draftclaim.RunAnalysis && kind != draftclaim.RunVerification {
			fmt.Fprintf(deps.Stderr, "error: unknown run kind %q (use analysis or verification)\n", c.Kind)
			return draftclaim.Errorf(draftclaim.EINVALID, "unknown run kind %q", c.Kind)
		}
		filter.Kind = &kind
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs archived yet. Use 'draftclaim analyze' or 'draftclaim verify' to create one.")
		return nil
	}

	for _, r := range runs {
		created := r.CreatedAt.Format("2006-01-02 15:04")
		switch r.Kind {
		case draftclaim.RunVerification:
			fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %d/%d approved\n", r.ID, created, r.Kind, r.Model, r.ApprovedCount, r.QuestionCount)
		default:
			fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, created, r.Kind, r.Model)
		}
	}

	return nil
}
