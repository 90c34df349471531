package safety

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestInsertSQL(t *testing.T) {
	if !strings.HasPrefix(insertSQL, "INSERT INTO analisis_seguro (id, employee_id,") {
		t.Errorf("unexpected statement: %s", insertSQL)
	}
	if !strings.HasSuffix(insertSQL, "RETURNING id") {
		t.Errorf("expected RETURNING id: %s", insertSQL)
	}
	if n := strings.Count(insertSQL, "::respuesta_ast"); n != len(Topics) {
		t.Errorf("expected %d enum casts, got %d", len(Topics), n)
	}
	if !strings.Contains(insertSQL, "NULLIF($9, '')::respuesta_ast") {
		t.Errorf("expected first answer bound at $9: %s", insertSQL)
	}
	if !strings.Contains(insertSQL, "$18)") {
		t.Errorf("expected 18 placeholders: %s", insertSQL)
	}
}

func TestInsertArgs(t *testing.T) {
	id := uuid.New()
	s := &Submission{
		EmployeeID:    7,
		Answers:       Answers{Documentos: "no_conforme", Conservacion: ""},
		Observaciones: "obs",
	}

	args := insertArgs(id, s)
	if len(args) != 18 {
		t.Fatalf("expected 18 args, got %d", len(args))
	}
	if args[0] != id {
		t.Error("expected id first")
	}
	if args[7] != "conforme" {
		t.Errorf("expected default state, got %v", args[7])
	}
	if args[8] != "no_conforme" || args[16] != "" {
		t.Errorf("unexpected answer args: %v / %v", args[8], args[16])
	}
	if args[17] != "obs" {
		t.Errorf("expected observaciones last, got %v", args[17])
	}
}
