package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tphakala/cocatalog/internal/catalog"
)

type tableRenderer struct{}

// table buffers one section and aligns it on Flush.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, title string, header ...string) *table {
	fmt.Fprintln(w, title)
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.Debug)}
	t.row(header...)
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.tw, " "+strings.Join(cells, "\t ")+"\t")
}

func (t *table) flush() error {
	return t.tw.Flush()
}

func id(v catalog.ID) string { return strconv.FormatInt(int64(v), 10) }

func members(m catalog.Members) string {
	list, ok := m.Get()
	if !ok {
		return "-"
	}
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = id(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func writeInfo(w io.Writer, info Info) {
	fmt.Fprintln(w, "Catalog:")
	fmt.Fprintf(w, "\tPath: %s\n", info.Path)
	fmt.Fprintf(w, "\tVersion: %d (%s)\n", info.Version, info.Generation)
	fmt.Fprintf(w, "\tRoot collection id: %d\n", info.RootCollection)
}

func (tableRenderer) Dump(w io.Writer, d *Dump) error {
	writeInfo(w, d.Catalog)

	if d.Keywords != nil {
		t := newTable(w, "Keywords", "id", "name")
		var walk func(nodes []KeywordNode, depth int)
		walk = func(nodes []KeywordNode, depth int) {
			for _, n := range nodes {
				t.row(id(n.ID), strings.Repeat("  ", depth)+n.Name)
				walk(n.Children, depth+1)
			}
		}
		walk(d.Keywords, 0)
		if err := t.flush(); err != nil {
			return err
		}
	}

	if d.Folders != nil {
		t := newTable(w, "Folders", "id", "root", "relative", "path")
		for _, f := range d.Folders {
			t.row(id(f.ID), f.Root, strconv.FormatBool(f.IsRelative), f.Path)
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if d.Images != nil {
		t := newTable(w, "Images", "id", "uuid", "folder", "format", "class", "name", "file", "lat", "long", "alt")
		for _, img := range d.Images {
			t.row(id(img.ID), img.UUID, id(img.Folder), img.Format.String(), strconv.FormatInt(img.Class, 10),
				img.DisplayName, img.FileName,
				optionalFloat(img.Latitude), optionalFloat(img.Longitude), optionalFloat(img.Altitude))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if d.Stacks != nil {
		t := newTable(w, "Stacks", "id", "collection", "pick", "content")
		for _, s := range d.Stacks {
			t.row(id(s.ID), id(s.Collection), id(s.Pick), members(s.Content))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if d.Collections != nil {
		t := newTable(w, "Collections", "id", "name", "parent", "content")
		for _, c := range d.Collections {
			t.row(id(c.ID), c.Name, id(c.Parent), members(c.Content))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}
	return nil
}

func (tableRenderer) Audit(w io.Writer, a *catalog.AuditReport) error {
	fmt.Fprintf(w, "Audit (%s)\n", a.Version)

	summary := newTable(w, "Summary", "kind", "count")
	for _, kind := range catalog.FindingKinds {
		summary.row(string(kind), strconv.Itoa(a.Count(kind)))
	}
	if err := summary.flush(); err != nil {
		return err
	}

	if len(a.Findings) == 0 {
		fmt.Fprintln(w, "Nothing ignored.")
		return nil
	}
	t := newTable(w, "Findings", "kind", "table", "row", "detail")
	for _, f := range a.Findings {
		t.row(string(f.Kind), f.Table, id(f.RowID), f.Detail)
	}
	return t.flush()
}

func (tableRenderer) Version(w io.Writer, v *VersionReport) error {
	writeInfo(w, v.Catalog)
	t := newTable(w, "Entities", "id", "name")
	for _, e := range v.Entities {
		t.row(strconv.FormatInt(e.ID, 10), e.Name)
	}
	return t.flush()
}
