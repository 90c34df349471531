package safety

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/viacotur/ast/internal/platform/upstream"
)

const registerPath = "/api/ast/register"

type erpSubmitter struct {
	client *upstream.Client
	logger zerolog.Logger
}

// NewERPSubmitter forwards submissions to the ERP's AST registration
// endpoint using the submission's token as bearer credential.
func NewERPSubmitter(client *upstream.Client, logger zerolog.Logger) Submitter {
	return &erpSubmitter{client: client, logger: logger}
}

// Submit fails with *upstream.StatusError when the ERP rejects the call.
func (e *erpSubmitter) Submit(ctx context.Context, s *Submission) (*Result, error) {
	payload := s.Payload()

	e.logger.Info().
		Int("employee_id", payload.EmployeeID).
		Int("contrato_id", payload.ContratoID).
		Str("token", upstream.MaskToken(s.Token)).
		Msg("forwarding AST submission")

	resp, err := e.client.PostJSON(ctx, registerPath, payload, s.Token)
	if err != nil {
		return nil, err
	}
	if err := e.client.CheckStatus(resp); err != nil {
		return nil, err
	}

	return &Result{Data: wrapBody(resp.Body)}, nil
}

// wrapBody returns body itself when it is JSON and {"raw": body} otherwise.
func wrapBody(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	wrapped, _ := json.Marshal(map[string]string{"raw": string(body)})
	return wrapped
}
