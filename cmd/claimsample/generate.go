package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/docx"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	paths, err := docx.WriteSampleSet(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", paths.Disclosure)
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", paths.AdditionalInfo)
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", paths.Claims)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "Try: draftclaim verify --disclosure %s --info %s --claims %s\n",
		paths.Disclosure, paths.AdditionalInfo, paths.Claims)

	return nil
}
