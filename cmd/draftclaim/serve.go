package main

import (
	"fmt"

	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/web"
)

// Run executes the serve command. It blocks until the context is
// cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", deps.Config.Server.Host, deps.Config.Server.Port)
	}

	srv := web.NewServer(web.Config{Addr: addr, Model: deps.Model}, web.Services{
		Reader:   deps.Reader,
		Answerer: deps.Answerer,
		Analyzer: deps.Analyzer,
		Models:   deps.Models,
		Reports:  deps.Reports,
		Runs:     deps.Runs,
		Answers:  deps.Answers,
	}, deps.Logger)

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}
	defer srv.Close()

	fmt.Fprintf(deps.Stdout, "Serving the review interface on http://%s\n", srv.Addr())
	fmt.Fprintln(deps.Stdout, "Press Ctrl+C to stop.")

	<-deps.Ctx.Done()
	fmt.Fprintln(deps.Stdout, "Shutting down.")
	return nil
}
