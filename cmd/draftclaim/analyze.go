package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	set, err := loadSet(deps, c.Disclosure, c.Info, c.Claims)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	model := c.Model
	if model == "" {
		model = deps.Model
	}

	fmt.Fprintf(deps.Stdout, "Analyzing claims with %s...\n\n", model)

	body, err := deps.Analyzer.Analyze(deps.Ctx, draftclaim.AnalysisRequest{
		Disclosure:     set.Disclosure.Text,
		AdditionalInfo: set.AdditionalText(),
		Claims:         set.Claims.Text,
		Model:          model,
	}, func(delta string) {
		fmt.Fprint(deps.Stdout, delta)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout)

	path, err := deps.Reports.WriteAnalysis(deps.Ctx, draftclaim.NewAnalysisReport(model, body))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Report written to %s\n", path)

	run := &draftclaim.Run{
		Kind:           draftclaim.RunAnalysis,
		Model:          model,
		DisclosurePath: c.Disclosure,
		ClaimsPath:     c.Claims,
		DisclosureHash: set.Disclosure.ContentHash,
		ClaimsHash:     set.Claims.ContentHash,
		ReportPath:     path,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		// The report on disk is the primary artifact; archiving is
		// best effort.
		fmt.Fprintf(deps.Stderr, "warning: run not archived: %s\n", draftclaim.ErrorMessage(err))
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Archived as run %s\n", run.ID)

	return nil
}
