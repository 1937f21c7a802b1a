package cli

import (
	"github.com/getmockd/mockhttp/pkg/fixture"
)

// loadFixtures reads fixtures from paths, falling back to the configured
// fixture list.
func (g *globals) loadFixtures(paths []string) ([]fixture.Fixture, error) {
	if len(paths) == 0 {
		paths = g.cfg.Fixtures
	}
	if len(paths) == 0 {
		return nil, ErrNoFixtures
	}

	fixtures, err := fixture.Load(g.workDir, paths...)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("fixtures loaded", "paths", paths, "count", len(fixtures))
	return fixtures, nil
}
