package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/govdoc"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	filter := govdoc.AccessFilter{Limit: c.Limit}
	if c.Host != "" {
		filter.Host = &c.Host
	}
	if c.Tool != "" {
		filter.Tool = &c.Tool
	}
	if c.Outcome != "" {
		outcome := govdoc.Outcome(c.Outcome)
		switch outcome {
		case govdoc.OutcomeVerified, govdoc.OutcomeRejected, govdoc.OutcomeFailed:
		default:
			return govdoc.Errorf(govdoc.EINVALID, "unknown outcome %q", c.Outcome)
		}
		filter.Outcome = &outcome
	}

	accesses, err := deps.Accesses.FindAccesses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", govdoc.ErrorMessage(err))
		return err
	}

	if len(accesses) == 0 {
		fmt.Fprintln(deps.Stdout, "No requests recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, a := range accesses {
		detail := a.Error
		if a.Outcome == govdoc.OutcomeVerified {
			detail = fmt.Sprintf("%d bytes %s", a.Bytes, a.ContentHash)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.CreatedAt.Local().Format(time.DateTime), a.Outcome, a.Tool, a.Host, a.URL, detail)
	}
	return tw.Flush()
}
