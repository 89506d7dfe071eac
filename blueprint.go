package jobscout

import (
	"context"
	"time"
)

// Blueprint is a named, persisted inference result for one careers page.
type Blueprint struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	EntryURL   string             `json:"entryUrl"`
	Profile    ParserProfile      `json:"profile"`
	Paging     PagingStrategy     `json:"paging"`
	Automation AutomationSettings `json:"automation"`
	Platform   Platform           `json:"platform"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// NewBlueprint builds a blueprint from an inference result.
func NewBlueprint(name, entryURL string, res *AutoParseResult) *Blueprint {
	return &Blueprint{
		Name:       name,
		EntryURL:   entryURL,
		Profile:    res.Profile,
		Paging:     res.Paging,
		Automation: res.Automation,
		Platform:   res.Audit.Platform,
	}
}

// Validate returns an error if the blueprint contains invalid fields.
func (b *Blueprint) Validate() error {
	if b.Name == "" {
		return Errorf(EINVALID, "blueprint name required")
	}
	if b.EntryURL == "" {
		return Errorf(EINVALID, "blueprint entry URL required")
	}
	return b.Profile.Validate()
}

// BlueprintService represents a service for managing blueprints.
type BlueprintService interface {
	// CreateBlueprint creates a new blueprint.
	// Returns ECONFLICT if a blueprint with the same name exists.
	CreateBlueprint(ctx context.Context, bp *Blueprint) error

	// FindBlueprintByID retrieves a blueprint by ID.
	// Returns ENOTFOUND if blueprint does not exist.
	FindBlueprintByID(ctx context.Context, id string) (*Blueprint, error)

	// FindBlueprints retrieves blueprints matching the filter.
	FindBlueprints(ctx context.Context, filter BlueprintFilter) ([]*Blueprint, error)

	// UpdateBlueprint updates an existing blueprint.
	// Returns ENOTFOUND if blueprint does not exist.
	UpdateBlueprint(ctx context.Context, id string, upd BlueprintUpdate) (*Blueprint, error)

	// DeleteBlueprint permanently removes a blueprint and its stored jobs.
	// Returns ENOTFOUND if blueprint does not exist.
	DeleteBlueprint(ctx context.Context, id string) error
}

// BlueprintFilter represents a filter for FindBlueprints.
type BlueprintFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BlueprintUpdate represents fields that can be updated on a blueprint.
type BlueprintUpdate struct {
	EntryURL   *string             `json:"entryUrl"`
	Profile    *ParserProfile      `json:"profile"`
	Paging     *PagingStrategy     `json:"paging"`
	Automation *AutomationSettings `json:"automation"`
}
