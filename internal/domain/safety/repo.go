package safety

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Insert stores one submission and returns its generated id.
	Insert(ctx context.Context, s *Submission) (uuid.UUID, error)
}
