package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/pkg/cli/internal/output"
	"github.com/getmockd/mockhttp/pkg/fixture"
	"github.com/getmockd/mockhttp/pkg/mapping"
)

// checkedMapping is one row of check output.
type checkedMapping struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	Source   string `json:"source"`
	Matcher  string `json:"matcher"`
	Resolver string `json:"resolver"`
}

func newCheckCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files or globs...]",
		Short: "Validate fixture files and list the mappings they define",
		Long: `Validate fixture files and list the mappings they define.

Each fixture is checked against the fixture schema, compiled, and
registered on an empty table. Indices are the ones the mappings would
receive in file order.`,
		Example: `  # Check every fixture under fixtures/
  mockhttp check 'fixtures/**/*.yaml'

  # Check the fixtures listed in .mockhttp.yaml or MOCKHTTP_FIXTURES
  mockhttp check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := g.loadFixtures(args)
			if err != nil {
				return err
			}

			rows, err := checkFixtures(g, fixtures)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return g.printResult(out, rows, func() error {
				if len(rows) == 0 {
					_, err := fmt.Fprintln(out, "No mappings defined")
					return err
				}
				w := output.Table(out)
				fmt.Fprintln(w, "INDEX\tNAME\tMATCHER\tRESOLVER\tSOURCE")
				for _, r := range rows {
					name := r.Name
					if name == "" {
						name = "-"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Index, name, r.Matcher, r.Resolver, r.Source)
				}
				return w.Flush()
			})
		},
	}
}

// checkFixtures registers fixtures on a scratch registry and describes
// the resulting entries.
func checkFixtures(g *globals, fixtures []fixture.Fixture) ([]checkedMapping, error) {
	registry := mapping.NewRegistry(mapping.WithLogger(g.logger))
	indices, err := fixture.Apply(registry, fixtures)
	if err != nil {
		return nil, err
	}

	byIndex := make(map[int]fixture.Fixture, len(indices))
	for i, idx := range indices {
		byIndex[idx] = fixtures[i]
	}

	entries := registry.Table().Entries()
	rows := make([]checkedMapping, 0, len(entries))
	for _, e := range entries {
		f := byIndex[e.Index]
		rows = append(rows, checkedMapping{
			Index:    e.Index,
			Name:     f.Name,
			Source:   f.Source,
			Matcher:  e.Matcher.Kind(),
			Resolver: e.Resolver.Kind(),
		})
	}
	return rows, nil
}
