package safety

import "github.com/viacotur/ast/internal/platform/jsonx"

// Answer is a checklist answer. Only the two constants below are valid.
type Answer string

const (
	Conforme   Answer = "conforme"
	NoConforme Answer = "no_conforme"
)

// NormalizeAnswer keeps v when it is exactly one of the two valid answers
// and falls back to Conforme otherwise.
func NormalizeAnswer(v string) Answer {
	switch Answer(v) {
	case Conforme, NoConforme:
		return Answer(v)
	}
	return Conforme
}

// Topics lists the checklist questions in form order.
var Topics = []string{
	"documentos",
	"descanso",
	"condiciones",
	"epp",
	"peligros",
	"pausas",
	"procedimientos",
	"aspectos",
	"conservacion",
}

// Answers holds the raw values posted by the form, one per topic. Values of
// any JSON type decode, so a non-string answer normalizes like any other
// invalid value.
type Answers struct {
	Documentos     jsonx.Text `json:"documentos"`
	Descanso       jsonx.Text `json:"descanso"`
	Condiciones    jsonx.Text `json:"condiciones"`
	EPP            jsonx.Text `json:"epp"`
	Peligros       jsonx.Text `json:"peligros"`
	Pausas         jsonx.Text `json:"pausas"`
	Procedimientos jsonx.Text `json:"procedimientos"`
	Aspectos       jsonx.Text `json:"aspectos"`
	Conservacion   jsonx.Text `json:"conservacion"`
}

// Values returns the answers in Topics order.
func (a Answers) Values() []string {
	return []string{
		string(a.Documentos), string(a.Descanso), string(a.Condiciones), string(a.EPP), string(a.Peligros),
		string(a.Pausas), string(a.Procedimientos), string(a.Aspectos), string(a.Conservacion),
	}
}

type NormalizedAnswers struct {
	Documentos     Answer `json:"documentos"`
	Descanso       Answer `json:"descanso"`
	Condiciones    Answer `json:"condiciones"`
	EPP            Answer `json:"epp"`
	Peligros       Answer `json:"peligros"`
	Pausas         Answer `json:"pausas"`
	Procedimientos Answer `json:"procedimientos"`
	Aspectos       Answer `json:"aspectos"`
	Conservacion   Answer `json:"conservacion"`
}

func (a Answers) Normalize() NormalizedAnswers {
	return NormalizedAnswers{
		Documentos:     NormalizeAnswer(string(a.Documentos)),
		Descanso:       NormalizeAnswer(string(a.Descanso)),
		Condiciones:    NormalizeAnswer(string(a.Condiciones)),
		EPP:            NormalizeAnswer(string(a.EPP)),
		Peligros:       NormalizeAnswer(string(a.Peligros)),
		Pausas:         NormalizeAnswer(string(a.Pausas)),
		Procedimientos: NormalizeAnswer(string(a.Procedimientos)),
		Aspectos:       NormalizeAnswer(string(a.Aspectos)),
		Conservacion:   NormalizeAnswer(string(a.Conservacion)),
	}
}

// Submission is the body of POST /api/guardar-seguridad. Field names follow
// the ERP's model; Token is the directory session token.
type Submission struct {
	EmployeeID       int    `json:"employee_id"`
	Email            string `json:"email"`
	ContratoID       int    `json:"contrato_id"`
	ImmediateBossID  int    `json:"immediate_boss_id"`
	EmailResponsable string `json:"email_responsable"`
	CompanyID        int    `json:"company_id"`
	State            string `json:"state"`
	Answers
	Observaciones string `json:"observaciones"`
	Token         string `json:"token"`
}

// Payload is what the ERP registration endpoint receives.
type Payload struct {
	State            string `json:"state"`
	EmployeeID       int    `json:"employee_id"`
	Email            string `json:"email"`
	ContratoID       int    `json:"contrato_id"`
	ImmediateBossID  int    `json:"immediate_boss_id"`
	EmailResponsable string `json:"email_responsable"`
	CompanyID        int    `json:"company_id"`
	NormalizedAnswers
	Observaciones string `json:"observaciones"`
}

// Payload drops the token, normalizes every answer and defaults state.
func (s *Submission) Payload() Payload {
	state := s.State
	if state == "" {
		state = string(Conforme)
	}
	return Payload{
		State:             state,
		EmployeeID:        s.EmployeeID,
		Email:             s.Email,
		ContratoID:        s.ContratoID,
		ImmediateBossID:   s.ImmediateBossID,
		EmailResponsable:  s.EmailResponsable,
		CompanyID:         s.CompanyID,
		NormalizedAnswers: s.Answers.Normalize(),
		Observaciones:     s.Observaciones,
	}
}

// Result is what a backend reports for an accepted submission. ERP
// submissions carry Data, stored ones carry ID.
type Result struct {
	ID   string
	Data []byte
}
