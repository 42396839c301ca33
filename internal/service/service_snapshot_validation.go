package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-dash-sync/models"
)

// SnapshotValidationService rejects blobs the dashboard could not load back:
// records without an id or with an id used twice in the same collection.
type SnapshotValidationService struct {
	inner SnapshotService
}

func NewSnapshotValidationService() SnapshotServiceWrapper {
	return &SnapshotValidationService{}
}

func (v *SnapshotValidationService) GetSnapshot(ctx context.Context, owner string) (models.CloudBlob, error) {
	if owner == "" {
		return models.CloudBlob{}, ErrInvalidDataProvided
	}
	return v.inner.GetSnapshot(ctx, owner)
}

func (v *SnapshotValidationService) PutSnapshot(ctx context.Context, owner string, blob models.CloudBlob) error {
	if owner == "" {
		return ErrInvalidDataProvided
	}
	if err := validateIDs("project", blob.Projects, func(p models.Project) string { return p.ID }); err != nil {
		return err
	}
	if err := validateIDs("customer", blob.Customers, func(c models.Customer) string { return c.ID }); err != nil {
		return err
	}
	if err := validateIDs("team member", blob.TeamMembers, func(m models.TeamMember) string { return m.ID }); err != nil {
		return err
	}
	return v.inner.PutSnapshot(ctx, owner, blob)
}

func (v *SnapshotValidationService) Wrap(inner SnapshotService) SnapshotService {
	v.inner = inner
	return v
}

func validateIDs[T any](kind string, records []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		key := id(r)
		if key == "" {
			return fmt.Errorf("%w: %s #%d", ErrEmptyRecordID, kind, i)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateRecordID, kind, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
