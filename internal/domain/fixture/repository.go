package fixture

import "context"

// Source loads the raw fixture list from an external dataset.
type Source interface {
	LoadFixtures(ctx context.Context) ([]Fixture, error)
}
