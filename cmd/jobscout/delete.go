package main

import (
	"fmt"

	"github.com/fwojciec/jobscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return jobscout.Errorf(jobscout.EINVALID, "use --force to confirm deletion")
	}

	bp, err := findBlueprint(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Blueprints.DeleteBlueprint(deps.Ctx, bp.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted blueprint %q\n", bp.Name)
	return nil
}
