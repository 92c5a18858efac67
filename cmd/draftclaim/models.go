package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	models, err := deps.Models.ListModels(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	if len(models) == 0 {
		fmt.Fprintln(deps.Stdout, "No models available. Pull one with 'ollama pull <model>'.")
		return nil
	}

	for _, m := range models {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", m.Name, formatSize(m.Size), m.ModifiedAt.Format("2006-01-02"))
	}

	return nil
}

func formatSize(bytes int64) string {
	const (
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.0f MB", float64(bytes)/mb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
