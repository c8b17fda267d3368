package audit

import (
	"github.com/spf13/cobra"
	"github.com/tphakala/cocatalog/internal/app"
	"github.com/tphakala/cocatalog/internal/logger"
)

// Command creates the audit command.
func Command(ctx *app.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <catalog>",
		Short: "Report what loading a catalog ignored",
		Long: `Load every object of a catalog and report rows that were skipped or
reference objects that do not exist. Nothing is repaired.`,
		Args: cobra.ExactArgs(1),
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
		return err
	}

	rep, err := cat.Audit()
	if err != nil {
		return err
	}

	ctx.Logger("audit").Info("audit finished",
		logger.String("path", cat.Path()),
		logger.Int("findings", len(rep.Findings)))
	return renderer.Audit(ctx.Stdout, rep)
}
