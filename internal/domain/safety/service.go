package safety

import (
	"context"
	"fmt"
)

// Submitter accepts a checklist. The ERP and database backends are
// alternatives; one is chosen at startup.
type Submitter interface {
	Submit(ctx context.Context, s *Submission) (*Result, error)
}

type storeSubmitter struct {
	repo Repository
}

// NewStoreSubmitter persists each submission as one row.
func NewStoreSubmitter(repo Repository) Submitter {
	return &storeSubmitter{repo: repo}
}

func (s *storeSubmitter) Submit(ctx context.Context, sub *Submission) (*Result, error) {
	id, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("insert analisis_seguro: %w", err)
	}
	return &Result{ID: id.String()}, nil
}
