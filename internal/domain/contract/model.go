package contract

import "github.com/viacotur/ast/internal/platform/jsonx"

// Record is one snapshot item. Fields other than these are ignored.
type Record struct {
	ID          jsonx.Text `json:"id"`
	Contrato    jsonx.Text `json:"contrato"`
	Responsable jsonx.Text `json:"responsable"`
	Empleado    jsonx.Text `json:"empleado"`
}

type snapshotFile struct {
	Items []Record `json:"items"`
}

// Group is one contract in the resolver response.
type Group struct {
	Contrato    string `json:"contrato"`
	Responsable string `json:"responsable,omitempty"`
}

// Resolution is the body of GET /api/seguridad/contratos. Responsable and
// Persona are null when the query omitted them.
type Resolution struct {
	Responsable *string `json:"responsable"`
	Persona     *string `json:"persona"`
	Contratos   []Group `json:"contratos"`
	Message     string  `json:"message,omitempty"`
}
