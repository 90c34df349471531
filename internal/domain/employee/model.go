package employee

import "github.com/viacotur/ast/internal/platform/jsonx"

// UpstreamEmployee is one item of the directory service's GET /empleados.
// Text fields accept any JSON type so one odd item does not fail the listing.
type UpstreamEmployee struct {
	ID            int        `json:"id"`
	Nombre        jsonx.Text `json:"nombre"`
	CorreoLaboral jsonx.Text `json:"correo_laboral"`
	Responsable   jsonx.Text `json:"responsable"`
	Monitor       jsonx.Text `json:"monitor"`
	Contrato      jsonx.Text `json:"contrato"`
	Compania      jsonx.Text `json:"compania"`
	Departamento  jsonx.Text `json:"departamento"`
	PuestoTrabajo jsonx.Text `json:"puesto_trabajo"`
	CodigoPIN     jsonx.Text `json:"codigo_pin"`
}

// DirectoryPage is the directory service's listing envelope. Token is the
// session credential later forwarded to the ERP.
type DirectoryPage struct {
	Status            string             `json:"status"`
	Token             string             `json:"token"`
	TotalEstimado     int                `json:"total_estimado"`
	PaginasRecorridas int                `json:"paginas_recorridas"`
	Items             []UpstreamEmployee `json:"items"`
}

// Employee is the reduced record served to the form.
type Employee struct {
	ID            int    `json:"id"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	Responsable   string `json:"responsable"`
	Monitor       string `json:"monitor"`
	Contrato      string `json:"contrato"`
	Compania      string `json:"compania"`
	Departamento  string `json:"departamento"`
	PuestoTrabajo string `json:"puesto_trabajo"`
	CodigoPIN     string `json:"codigo_pin"`
}

// FromUpstream renames correo_laboral to email. A null or missing PIN reads
// as the empty string.
func FromUpstream(u UpstreamEmployee) Employee {
	return Employee{
		ID:            u.ID,
		Nombre:        string(u.Nombre),
		Email:         string(u.CorreoLaboral),
		Responsable:   string(u.Responsable),
		Monitor:       string(u.Monitor),
		Contrato:      string(u.Contrato),
		Compania:      string(u.Compania),
		Departamento:  string(u.Departamento),
		PuestoTrabajo: string(u.PuestoTrabajo),
		CodigoPIN:     string(u.CodigoPIN),
	}
}

// Listing is the body of GET /api/empleados.
type Listing struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token"`
	Empleados []Employee `json:"empleados"`
	Total     int        `json:"total"`
}

func NewListing(page *DirectoryPage) *Listing {
	employees := make([]Employee, 0, len(page.Items))
	for _, item := range page.Items {
		employees = append(employees, FromUpstream(item))
	}
	return &Listing{
		Success:   true,
		Token:     page.Token,
		Empleados: employees,
		Total:     page.TotalEstimado,
	}
}
