// Package report renders loaded catalog data for people and for tools.
//
// It only consumes the typed collections produced by package catalog; it
// never queries the catalog itself. Sorting for display and folder path
// resolution live here.
package report

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tphakala/cocatalog/internal/catalog"
	"github.com/tphakala/cocatalog/internal/errors"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", errors.Newf("unknown output format %q", s).
		Component("report").
		Category(errors.CategoryConfiguration).
		Context("format", s).
		Build()
}

// Info describes the catalog a report was made from.
type Info struct {
	Path           string     `json:"path" yaml:"path"`
	Version        int64      `json:"version" yaml:"version"`
	Generation     string     `json:"generation" yaml:"generation"`
	RootCollection catalog.ID `json:"root_collection" yaml:"root_collection"`
}

// NewInfo describes an open catalog. It is valid after a failed version
// gate too, with the raw version set.
func NewInfo(c *catalog.Catalog) Info {
	return Info{
		Path:           c.Path(),
		Version:        c.RawVersion(),
		Generation:     c.Version().String(),
		RootCollection: c.RootCollectionID(),
	}
}

// KeywordNode is a keyword with its children, for nested output.
type KeywordNode struct {
	ID       catalog.ID    `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Children []KeywordNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// FolderRow is a folder with its resolved path.
type FolderRow struct {
	catalog.Folder `yaml:",inline"`
	Path           string `json:"path" yaml:"path"`
}

// CollectionRow is a collection flattened for output.
type CollectionRow struct {
	ID      catalog.ID      `json:"id" yaml:"id"`
	Parent  catalog.ID      `json:"parent" yaml:"parent"`
	Kind    string          `json:"kind" yaml:"kind"`
	Name    string          `json:"name" yaml:"name"`
	Content catalog.Members `json:"content" yaml:"content"`
}

// Dump is everything the dump command selected. Nil sections are omitted.
type Dump struct {
	Catalog     Info            `json:"catalog" yaml:"catalog"`
	Keywords    []KeywordNode   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Folders     []FolderRow     `json:"folders,omitempty" yaml:"folders,omitempty"`
	Images      []catalog.Image `json:"images,omitempty" yaml:"images,omitempty"`
	Stacks      []catalog.Stack `json:"stacks,omitempty" yaml:"stacks,omitempty"`
	Collections []CollectionRow `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// VersionReport is the output of the version command.
type VersionReport struct {
	Catalog  Info                    `json:"catalog" yaml:"catalog"`
	Entities []catalog.RegistryEntry `json:"entities" yaml:"entities"`
}

// Renderer writes reports in one format.
type Renderer interface {
	Dump(w io.Writer, d *Dump) error
	Audit(w io.Writer, r *catalog.AuditReport) error
	Version(w io.Writer, v *VersionReport) error
}

// NewRenderer returns the renderer for f.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatTable:
		return tableRenderer{}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	default:
		_, err := ParseFormat(string(f))
		return nil, err
	}
}

// FolderPath joins a folder's root and relative path. Relative folders are
// resolved against catalogDir, the directory holding the catalog store.
func FolderPath(f catalog.Folder, catalogDir string) string {
	if f.IsRelative {
		return filepath.Join(catalogDir, f.Root, f.RelativePath)
	}
	return filepath.Join(f.Root, f.RelativePath)
}

// FolderRows resolves every folder path, sorted by id.
func FolderRows(folders []catalog.Folder, catalogDir string) []FolderRow {
	rows := make([]FolderRow, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, FolderRow{Folder: f, Path: FolderPath(f, catalogDir)})
	}
	slices.SortStableFunc(rows, func(a, b FolderRow) int { return cmpID(a.ID, b.ID) })
	return rows
}

// CollectionRows flattens collections, sorted by id.
func CollectionRows(collections []catalog.Collection) []CollectionRow {
	rows := make([]CollectionRow, 0, len(collections))
	for _, c := range collections {
		typ := c.Type
		if typ == nil {
			typ = catalog.Invalid{}
		}
		rows = append(rows, CollectionRow{
			ID:      c.ID,
			Parent:  c.Parent,
			Kind:    typ.Kind(),
			Name:    typ.String(),
			Content: c.Content,
		})
	}
	slices.SortStableFunc(rows, func(a, b CollectionRow) int { return cmpID(a.ID, b.ID) })
	return rows
}

// KeywordNodes nests the keyword tree. Keywords not reachable from the root
// are left out; the audit command reports them.
func KeywordNodes(tree *catalog.KeywordTree) []KeywordNode {
	var roots []KeywordNode
	// stack[d] is the list keywords of depth d+1 are appended to
	var stack []*[]KeywordNode
	stack = append(stack, &roots)

	tree.Walk(func(k catalog.Keyword, depth int) bool {
		stack = stack[:depth]
		siblings := stack[depth-1]
		*siblings = append(*siblings, KeywordNode{ID: k.ID, Name: k.Name})
		node := &(*siblings)[len(*siblings)-1]
		stack = append(stack, &node.Children)
		return true
	})
	return roots
}

// SortedImages returns images ordered by id.
func SortedImages(images []catalog.Image) []catalog.Image {
	out := slices.Clone(images)
	slices.SortStableFunc(out, func(a, b catalog.Image) int { return cmpID(a.ID, b.ID) })
	return out
}

// SortedStacks returns stacks ordered by id.
func SortedStacks(stacks []catalog.Stack) []catalog.Stack {
	out := slices.Clone(stacks)
	slices.SortStableFunc(out, func(a, b catalog.Stack) int { return cmpID(a.ID, b.ID) })
	return out
}

func cmpID(a, b catalog.ID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
