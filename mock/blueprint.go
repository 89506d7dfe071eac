package mock

import (
	"context"

	"github.com/fwojciec/jobscout"
)

var _ jobscout.BlueprintService = (*BlueprintService)(nil)

// BlueprintService is a mock implementation of jobscout.BlueprintService.
type BlueprintService struct {
	CreateBlueprintFn   func(ctx context.Context, bp *jobscout.Blueprint) error
	FindBlueprintByIDFn func(ctx context.Context, id string) (*jobscout.Blueprint, error)
	FindBlueprintsFn    func(ctx context.Context, filter jobscout.BlueprintFilter) ([]*jobscout.Blueprint, error)
	UpdateBlueprintFn   func(ctx context.Context, id string, upd jobscout.BlueprintUpdate) (*jobscout.Blueprint, error)
	DeleteBlueprintFn   func(ctx context.Context, id string) error
}

func (s *BlueprintService) CreateBlueprint(ctx context.Context, bp *jobscout.Blueprint) error {
	return s.CreateBlueprintFn(ctx, bp)
}

func (s *BlueprintService) FindBlueprintByID(ctx context.Context, id string) (*jobscout.Blueprint, error) {
	return s.FindBlueprintByIDFn(ctx, id)
}

func (s *BlueprintService) FindBlueprints(ctx context.Context, filter jobscout.BlueprintFilter) ([]*jobscout.Blueprint, error) {
	return s.FindBlueprintsFn(ctx, filter)
}

func (s *BlueprintService) UpdateBlueprint(ctx context.Context, id string, upd jobscout.BlueprintUpdate) (*jobscout.Blueprint, error) {
	return s.UpdateBlueprintFn(ctx, id, upd)
}

func (s *BlueprintService) DeleteBlueprint(ctx context.Context, id string) error {
	return s.DeleteBlueprintFn(ctx, id)
}
