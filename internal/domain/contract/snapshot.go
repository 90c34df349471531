package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot provides the contract records.
type Snapshot interface {
	Records(ctx context.Context) ([]Record, error)
}

type fileSnapshot struct {
	path string
}

// NewFileSnapshot reads path on every call; edits to the file are picked up
// by the next request.
func NewFileSnapshot(path string) Snapshot {
	return &fileSnapshot{path: path}
}

func (f *fileSnapshot) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}

	var file snapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", f.path, err)
	}
	if file.Items == nil {
		return []Record{}, nil
	}
	return file.Items, nil
}
