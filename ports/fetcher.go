package ports

import (
	"context"

	"maridash/domain/table"
)

// ArtifactFetcher reads published artifacts from the static file host.
// Implementations report failures as internal/errors AppErrors:
// NOT_FOUND for a non-success status, EXTERNAL_SERVICE_ERROR for transport
// failures, MALFORMED_DATA for a body that is not a readable table.
type ArtifactFetcher interface {
	// ProbeImage checks that an image exists at url without keeping its body
	ProbeImage(ctx context.Context, url string) error
	// FetchTable downloads and parses a CSV table
	FetchTable(ctx context.Context, url string) (*table.Table, error)
}
