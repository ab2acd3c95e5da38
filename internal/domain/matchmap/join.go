package matchmap

import (
	"context"
	"strings"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

// ResolvedGroup is a stadium group that can be placed on the map.
type ResolvedGroup struct {
	Key         string
	Stadium     string
	City        string
	Coordinates stadium.Coordinates
	Info        *stadium.Info
	Fixtures    []fixture.Fixture
}

// Resolution is the outcome of joining grouped fixtures with the indices.
type Resolution struct {
	Groups     []ResolvedGroup
	Unresolved []string
	Bounds     Bounds
}

func (r Resolution) FixtureCount() int {
	total := 0
	for _, group := range r.Groups {
		total += len(group.Fixtures)
	}
	return total
}

// ResolveGroup joins one stadium group. Coordinates come from the stadium
// name with the first fixture's city as fallback; stadium info is matched the
// same way. ok is false when no coordinates resolve.
func ResolveGroup(key string, fixtures []fixture.Fixture, coords *stadium.CoordinateIndex, infos *stadium.InfoIndex) (ResolvedGroup, bool) {
	if len(fixtures) == 0 {
		return ResolvedGroup{}, false
	}

	first := fixtures[0]
	point, ok := coords.Lookup(key, first.City)
	if !ok {
		return ResolvedGroup{}, false
	}

	out := ResolvedGroup{
		Key:         key,
		Stadium:     strings.TrimSpace(first.Stadium),
		City:        strings.TrimSpace(first.City),
		Coordinates: point,
		Fixtures:    fixtures,
	}
	if info, found := infos.Lookup(key, first.City); found {
		out.Info = &info
	}

	return out, true
}

// Resolve visits every group once. Groups without coordinates are left out
// of the result and reported through the logger only.
func Resolve(ctx context.Context, grouped fixture.Grouped, coords *stadium.CoordinateIndex, infos *stadium.InfoIndex, logger *logging.Logger) Resolution {
	if logger == nil {
		logger = logging.Default()
	}

	out := Resolution{Groups: make([]ResolvedGroup, 0, grouped.Len())}
	for _, group := range grouped.Groups() {
		resolved, ok := ResolveGroup(group.Key, group.Fixtures, coords, infos)
		if !ok {
			logger.WarnContext(ctx, "coordinates not found for stadium",
				"stadium", group.Key,
				"fixtures", len(group.Fixtures),
			)
			out.Unresolved = append(out.Unresolved, group.Key)
			continue
		}
		out.Bounds = out.Bounds.Extend(resolved.Coordinates)
		out.Groups = append(out.Groups, resolved)
	}

	return out
}
