package users

import (
	"context"
	"time"

	"github.com/nesba5git/onpointflies/internal/models"
)

// Service encapsulates user-record business logic on top of a Store.
type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

// Store exposes the underlying store (the role resolver shares it).
func (s *Service) Store() Store { return s.store }

// Get returns the typed view of a user record, nil when absent.
func (s *Service) Get(ctx context.Context, sub string) (*models.User, error) {
	rec, err := s.store.Get(ctx, sub)
	if err != nil {
		return nil, err
	}
	return models.UserFromRecord(rec), nil
}

// GetRecord returns the raw stored record, nil when absent.
func (s *Service) GetRecord(ctx context.Context, sub string) (map[string]interface{}, error) {
	return s.store.Get(ctx, sub)
}

// List returns all known users.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.UserFromRecord(rec))
	}
	return out, nil
}

// SetRole updates the persisted role of an existing user. Returns
// (nil, nil) when no record exists for sub. The update re-reads and
// merges, so unrelated stored fields survive.
func (s *Service) SetRole(ctx context.Context, sub, role string) (*models.User, error) {
	rec, err := s.store.Get(ctx, sub)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	rec["role"] = role
	rec["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	if err := s.store.Set(ctx, sub, rec); err != nil {
		return nil, err
	}
	return models.UserFromRecord(rec), nil
}
