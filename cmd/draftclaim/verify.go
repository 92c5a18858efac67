package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/siddhant230/draftclaim"
)

// Run executes the verify command. It walks the reviewer questions one
// by one on stdin/stdout: collect optional context, stream the model's
// answer, then ask for a yes/no decision. A rejected answer puts the
// question back with the rejection attached so the retry can improve on
// it; a failed generation reports the error and asks the question
// again.
func (c *VerifyCmd) Run(deps *Dependencies) error {
	set, err := loadSet(deps, c.Disclosure, c.Info, c.Claims)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	questions := set.Questions()
	if len(questions) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no review comments found in %s\n", c.Claims)
		return draftclaim.Errorf(draftclaim.EINVALID, "no review comments found in %s", c.Claims)
	}

	model := c.Model
	if model == "" {
		model = deps.Model
	}

	session, err := draftclaim.NewSession(draftclaim.SessionConfig{
		Questions:      questions,
		Disclosure:     set.Disclosure.Text,
		AdditionalInfo: set.AdditionalText(),
		Model:          model,
		Answerer:       deps.Answerer,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Verifying %d questions with %s.\n", len(questions), model)

	scanner := bufio.NewScanner(deps.Stdin)
	for session.State() != draftclaim.StateComplete {
		q := session.CurrentQuestion()
		fmt.Fprintf(deps.Stdout, "\nQuestion %d of %d: %s\n", q.Index+1, session.QuestionCount(), q.Text)
		if q.Anchor != "" {
			fmt.Fprintf(deps.Stdout, "Claim: %s\n", q.Anchor)
		}
		if session.LastRejected() != nil {
			fmt.Fprintln(deps.Stdout, "Previous answer rejected. Add context to improve the retry.")
		}

		fmt.Fprint(deps.Stdout, "Additional context (optional): ")
		line, err := readLine(scanner)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
			return err
		}

		fmt.Fprintln(deps.Stdout)
		_, err = session.Submit(deps.Ctx, strings.TrimSpace(line), func(delta string) {
			fmt.Fprint(deps.Stdout, delta)
		})
		if err != nil {
			// A failed generation leaves the session on the same
			// question with nothing recorded.
			fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
			if deps.Ctx.Err() != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, "No answer was recorded. Try again, or press Ctrl+C to quit.")
			continue
		}
		fmt.Fprintln(deps.Stdout)

		for {
			fmt.Fprint(deps.Stdout, "Approve this answer? (yes/no): ")
			line, err := readLine(scanner)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
				return err
			}
			decision, err := draftclaim.ParseDecision(line)
			if err != nil {
				fmt.Fprintln(deps.Stdout, `Please answer "yes" or "no".`)
				continue
			}
			if err := session.Decide(decision); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
				return err
			}
			break
		}
	}

	report, err := draftclaim.QAReportFromSession(session)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}
	path, err := deps.Reports.WriteQA(deps.Ctx, report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", draftclaim.ErrorMessage(err))
		return err
	}

	approved, total := session.Progress()
	fmt.Fprintf(deps.Stdout, "\nVerification complete: %d of %d answers approved.\n", approved, total)
	fmt.Fprintf(deps.Stdout, "Report written to %s\n", path)

	run := &draftclaim.Run{
		Kind:           draftclaim.RunVerification,
		Model:          model,
		DisclosurePath: c.Disclosure,
		ClaimsPath:     c.Claims,
		DisclosureHash: set.Disclosure.ContentHash,
		ClaimsHash:     set.Claims.ContentHash,
		QuestionCount:  total,
		ApprovedCount:  approved,
		ReportPath:     path,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: run not archived: %s\n", draftclaim.ErrorMessage(err))
		return nil
	}
	if err := deps.Answers.CreateAnswers(deps.Ctx, session.AnswerRecords(run.ID)); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: answers not archived: %s\n", draftclaim.ErrorMessage(err))
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Archived as run %s\n", run.ID)

	return nil
}

// readLine reads one line of reviewer input. Closed input mid-session
// is an error; the report only exists once every question is decided.
func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot read input")
		}
		return "", draftclaim.Errorf(draftclaim.EINVALID, "input ended before verification completed")
	}
	return scanner.Text(), nil
}
