package ports

import (
	"context"

	"retcheck/domain/returns"
)

// ReturnsReader loads a single returns column from a tabular source.
// Implementations fail with a DATA_ACCESS_ERROR when the source is missing,
// unreadable, or lacks the column.
type ReturnsReader interface {
	ReadReturns(ctx context.Context, path string) (*returns.Series, error)
}
