package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/crawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	bp, err := findBlueprint(deps, c.Name)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bp); err != nil {
		return err
	}

	if deps.Jobs == nil {
		return nil
	}
	jobs, err := deps.Jobs.FindJobs(deps.Ctx, jobscout.JobFilter{BlueprintID: &bp.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs stored. Use 'jobscout run' to fetch them.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "%s stored, last fetched %s\n",
		crawl.FormatJobs(len(jobs)), jobs[len(jobs)-1].FetchedAt.Format("2006-01-02 15:04"))
	return nil
}
