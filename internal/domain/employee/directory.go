package employee

import (
	"context"

	"github.com/viacotur/ast/internal/platform/upstream"
)

// Directory fetches the employee listing.
type Directory interface {
	List(ctx context.Context) (*DirectoryPage, error)
}

type httpDirectory struct {
	client *upstream.Client
}

func NewDirectory(client *upstream.Client) Directory {
	return &httpDirectory{client: client}
}

// List returns *upstream.StatusError on a non-2xx reply.
func (d *httpDirectory) List(ctx context.Context) (*DirectoryPage, error) {
	resp, err := d.client.Get(ctx, "/empleados", nil)
	if err != nil {
		return nil, err
	}
	if err := d.client.CheckStatus(resp); err != nil {
		return nil, err
	}

	var page DirectoryPage
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
