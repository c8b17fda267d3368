package dump

import (
	"github.com/spf13/cobra"
	"github.com/tphakala/cocatalog/internal/app"
	"github.com/tphakala/cocatalog/internal/catalog"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/report"
)

// Selection lists the object kinds to dump.
type Selection struct {
	All         bool
	Keywords    bool
	Folders     bool
	Images      bool
	Stacks      bool
	Collections bool
}

func (s Selection) keywords() bool    { return s.All || s.Keywords }
func (s Selection) folders() bool     { return s.All || s.Folders }
func (s Selection) images() bool      { return s.All || s.Images }
func (s Selection) stacks() bool      { return s.All || s.Stacks }
func (s Selection) collections() bool { return s.All || s.Collections }

// Command creates the dump command.
func Command(ctx *app.Context) *cobra.Command {
	var sel Selection

	cmd := &cobra.Command{
		Use:   "dump [flags] <catalog>",
		Short: "Dump the objects of a catalog",
		Long: `Dump the selected objects of a catalog. <catalog> is either the store
file or the catalog directory holding it. Without a selection only the
catalog header is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, args[0], sel)
		},
	}

	setupFlags(cmd, &sel)

	return cmd
}

// setupFlags configures flags specific to the dump command.
func setupFlags(cmd *cobra.Command, sel *Selection) {
	cmd.Flags().BoolVar(&sel.All, "all", false, "Select all objects")
	cmd.Flags().BoolVar(&sel.Keywords, "keywords", false, "Select keywords")
	cmd.Flags().BoolVar(&sel.Folders, "folders", false, "Select folders")
	cmd.Flags().BoolVar(&sel.Images, "images", false, "Select images")
	cmd.Flags().BoolVar(&sel.Stacks, "stacks", false, "Select stacks")
	cmd.Flags().BoolVar(&sel.Collections, "collections", false, "Select collections")
	cmd.MarkFlagsMutuallyExclusive("all", "keywords")
	cmd.MarkFlagsMutuallyExclusive("all", "folders")
	cmd.MarkFlagsMutuallyExclusive("all", "images")
	cmd.MarkFlagsMutuallyExclusive("all", "stacks")
	cmd.MarkFlagsMutuallyExclusive("all", "collections")
}

func run(ctx *app.Context, path string, sel Selection) error {
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
			// unsupported version: print what is known before failing
			_ = renderer.Dump(ctx.Stdout, &report.Dump{Catalog: report.NewInfo(cat)})
		}
		return err
	}

	d, err := Build(cat, sel)
	if err != nil {
		return err
	}

	ctx.Logger("dump").Debug("rendering dump",
		logger.Int("keywords", len(d.Keywords)),
		logger.Int("folders", len(d.Folders)),
		logger.Int("images", len(d.Images)),
		logger.Int("stacks", len(d.Stacks)),
		logger.Int("collections", len(d.Collections)))
	return renderer.Dump(ctx.Stdout, d)
}

// Build loads the selected objects of an open catalog. Collections have
// their content resolved.
func Build(cat *catalog.Catalog, sel Selection) (*report.Dump, error) {
	d := &report.Dump{Catalog: report.NewInfo(cat)}

	if sel.keywords() {
		tree, err := cat.LoadKeywordsTree()
		if err != nil {
			return nil, err
		}
		d.Keywords = report.KeywordNodes(tree)
		if d.Keywords == nil {
			d.Keywords = []report.KeywordNode{}
		}
	}

	if sel.folders() {
		folders, err := cat.LoadFolders()
		if err != nil {
			return nil, err
		}
		d.Folders = report.FolderRows(folders, cat.Dir())
	}

	if sel.images() {
		images, err := cat.LoadImages()
		if err != nil {
			return nil, err
		}
		d.Images = report.SortedImages(images)
	}

	if sel.stacks() {
		stacks, err := cat.LoadStacks()
		if err != nil {
			return nil, err
		}
		d.Stacks = report.SortedStacks(stacks)
	}

	if sel.collections() {
		collections, err := cat.LoadCollections()
		if err != nil {
			return nil, err
		}
		for i := range collections {
			if err := cat.ResolveCollectionContent(&collections[i]); err != nil {
				return nil, err
			}
		}
		d.Collections = report.CollectionRows(collections)
	}

	return d, nil
}
