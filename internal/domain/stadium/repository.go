package stadium

import "context"

// CoordinateSource loads raw coordinate rows from an external dataset.
type CoordinateSource interface {
	LoadCoordinates(ctx context.Context) ([]RawCoordinateRow, error)
}

// InfoSource loads stadium descriptive metadata.
type InfoSource interface {
	LoadInfos(ctx context.Context) ([]Info, error)
}
