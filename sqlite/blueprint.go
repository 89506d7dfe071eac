package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/jobscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ jobscout.BlueprintService = (*BlueprintService)(nil)

// BlueprintService implements jobscout.BlueprintService using SQLite.
type BlueprintService struct {
	db *DB
}

// NewBlueprintService creates a new BlueprintService.
func NewBlueprintService(db *DB) *BlueprintService {
	return &BlueprintService{db: db}
}

const blueprintColumns = "id, name, entry_url, platform, profile, paging, automation, created_at, updated_at"

// CreateBlueprint creates a new blueprint.
func (s *BlueprintService) CreateBlueprint(ctx context.Context, bp *jobscout.Blueprint) error {
	if err := bp.Validate(); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blueprints WHERE name = ?", bp.Name).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return jobscout.Errorf(jobscout.ECONFLICT, "blueprint %q already exists", bp.Name)
	}

	profile, paging, automation, err := encodeBlueprint(bp)
	if err != nil {
		return err
	}

	bp.ID = uuid.New().String()
	now := time.Now().UTC()
	bp.CreatedAt = now
	bp.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blueprints (`+blueprintColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, bp.ID, bp.Name, bp.EntryURL, string(bp.Platform), profile, paging, automation,
		bp.CreatedAt.Format(time.RFC3339), bp.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindBlueprintByID retrieves a blueprint by ID.
func (s *BlueprintService) FindBlueprintByID(ctx context.Context, id string) (*jobscout.Blueprint, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+blueprintColumns+" FROM blueprints WHERE id = ?", id)
	bp, err := scanBlueprint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, jobscout.Errorf(jobscout.ENOTFOUND, "blueprint not found")
	}
	if err != nil {
		return nil, err
	}
	return bp, nil
}

// FindBlueprints retrieves blueprints matching the filter, ordered by name.
func (s *BlueprintService) FindBlueprints(ctx context.Context, filter jobscout.BlueprintFilter) ([]*jobscout.Blueprint, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + blueprintColumns + " FROM blueprints WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blueprints []*jobscout.Blueprint
	for rows.Next() {
		bp, err := scanBlueprint(rows)
		if err != nil {
			return nil, err
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, rows.Err()
}

// UpdateBlueprint updates an existing blueprint.
func (s *BlueprintService) UpdateBlueprint(ctx context.Context, id string, upd jobscout.BlueprintUpdate) (*jobscout.Blueprint, error) {
	bp, err := s.FindBlueprintByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.EntryURL != nil {
		bp.EntryURL = *upd.EntryURL
	}
	if upd.Profile != nil {
		bp.Profile = *upd.Profile
	}
	if upd.Paging != nil {
		bp.Paging = *upd.Paging
	}
	if upd.Automation != nil {
		bp.Automation = *upd.Automation
	}

	if err := bp.Validate(); err != nil {
		return nil, err
	}

	profile, paging, automation, err := encodeBlueprint(bp)
	if err != nil {
		return nil, err
	}
	bp.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE blueprints
		SET entry_url = ?, profile = ?, paging = ?, automation = ?, updated_at = ?
		WHERE id = ?
	`, bp.EntryURL, profile, paging, automation, bp.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return bp, nil
}

// DeleteBlueprint permanently removes a blueprint. Stored jobs are removed
// by the foreign key cascade.
func (s *BlueprintService) DeleteBlueprint(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM blueprints WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return jobscout.Errorf(jobscout.ENOTFOUND, "blueprint not found")
	}

	return nil
}

func encodeBlueprint(bp *jobscout.Blueprint) (profile, paging, automation string, err error) {
	if profile, err = marshalColumn(bp.Profile, "profile"); err != nil {
		return "", "", "", err
	}
	if paging, err = marshalColumn(bp.Paging, "paging"); err != nil {
		return "", "", "", err
	}
	if automation, err = marshalColumn(bp.Automation, "automation"); err != nil {
		return "", "", "", err
	}
	return profile, paging, automation, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBlueprint(row scanner) (*jobscout.Blueprint, error) {
	var bp jobscout.Blueprint
	var platform, profile, paging, automation, createdAt, updatedAt string

	if err := row.Scan(&bp.ID, &bp.Name, &bp.EntryURL, &platform, &profile, &paging, &automation,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	bp.Platform = jobscout.Platform(platform)

	if err := unmarshalColumn(profile, "profile", &bp.Profile); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(paging, "paging", &bp.Paging); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(automation, "automation", &bp.Automation); err != nil {
		return nil, err
	}

	var err error
	if bp.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if bp.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &bp, nil
}
