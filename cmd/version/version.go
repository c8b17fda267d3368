package version

import (
	"github.com/spf13/cobra"
	"github.com/tphakala/cocatalog/internal/app"
	"github.com/tphakala/cocatalog/internal/report"
)

// Command creates the version command.
func Command(ctx *app.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version <catalog>",
		Short: "Print the catalog version and entity registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, args[0])
		},
	}

	return cmd
}

func run(ctx *app.Context, path string) error {
	renderer, err := ctx.Renderer()
	if err != nil {
		return err
	}

	cat, err := ctx.OpenCatalog(path)
	if cat != nil {
		defer func() { _ = cat.Close() }()
	}
	if err != nil {
		if cat != nil {
			_ = renderer.Version(ctx.Stdout, &report.VersionReport{Catalog: report.NewInfo(cat)})
		}
		return err
	}

	return renderer.Version(ctx.Stdout, &report.VersionReport{
		Catalog:  report.NewInfo(cat),
		Entities: cat.Registry().Entries(),
	})
}
