package safety

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/viacotur/ast/internal/platform/db"
)

type repoPG struct {
	pool *db.LazyPool
}

func NewRepo(pool *db.LazyPool) Repository {
	return &repoPG{pool: pool}
}

// insertSQL binds every answer through NULLIF(...)::respuesta_ast so an
// empty answer is stored as NULL and anything outside the enum fails the cast.
var insertSQL = buildInsertSQL()

func buildInsertSQL() string {
	cols := []string{
		"id", "employee_id", "email", "contrato_id", "immediate_boss_id",
		"email_responsable", "company_id", "state",
	}
	vals := make([]string, 0, len(cols)+len(Topics)+1)
	for i := range cols {
		vals = append(vals, fmt.Sprintf("$%d", i+1))
	}
	for _, topic := range Topics {
		cols = append(cols, topic)
		vals = append(vals, fmt.Sprintf("NULLIF($%d, '')::respuesta_ast", len(vals)+1))
	}
	cols = append(cols, "observaciones")
	vals = append(vals, fmt.Sprintf("$%d", len(vals)+1))

	return fmt.Sprintf("INSERT INTO analisis_seguro (%s) VALUES (%s) RETURNING id",
		strings.Join(cols, ", "), strings.Join(vals, ", "))
}

func insertArgs(id uuid.UUID, s *Submission) []interface{} {
	state := s.State
	if state == "" {
		state = string(Conforme)
	}
	args := []interface{}{
		id, s.EmployeeID, s.Email, s.ContratoID, s.ImmediateBossID,
		s.EmailResponsable, s.CompanyID, state,
	}
	for _, v := range s.Answers.Values() {
		args = append(args, v)
	}
	return append(args, s.Observaciones)
}

func (r *repoPG) Insert(ctx context.Context, s *Submission) (uuid.UUID, error) {
	pool, err := r.pool.Get(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := pool.QueryRow(ctx, insertSQL, insertArgs(uuid.New(), s)...).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
