package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/tui"
)

// Run executes the tui command.
func (c *TuiCmd) Run(deps *Dependencies) error {
	set, err := loadSet(deps, c.Disclosure, c.Info, c.Claims)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	if len(set.Questions()) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no review comments found in %s\n", c.Claims)
		return draftclaim.Errorf(draftclaim.EINVALID, "no review comments found in %s", c.Claims)
	}

	model := c.Model
	if model == "" {
		model = deps.Model
	}

	if err := tui.Run(deps.Ctx, tui.Config{
		Set:      set,
		Model:    model,
		Answerer: deps.Answerer,
		Reports:  deps.Reports,
		Runs:     deps.Runs,
		Answers:  deps.Answers,
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	return nil
}
