package main

import (
	"fmt"

	"github.com/fwojciec/jobscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	blueprints, err := deps.Blueprints.FindBlueprints(deps.Ctx, jobscout.BlueprintFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}

	if len(blueprints) == 0 {
		fmt.Fprintln(deps.Stdout, "No blueprints found. Use 'jobscout infer' to create one.")
		return nil
	}

	for _, bp := range blueprints {
		platform := string(bp.Platform)
		if platform == "" {
			platform = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", bp.ID, bp.Name, platform, bp.EntryURL)
	}

	return nil
}
