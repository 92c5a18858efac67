package main

import (
	"context"
	"io"
)

// Dependencies holds the context and writers for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// GenerateCmd writes the sample document set.
type GenerateCmd struct {
	Dir string
}
