package report

import (
	"encoding/json"
	"io"

	"github.com/tphakala/cocatalog/internal/catalog"
	"gopkg.in/yaml.v3"
)

type jsonRenderer struct{}

func (jsonRenderer) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r jsonRenderer) Dump(w io.Writer, d *Dump) error { return r.encode(w, d) }

func (r jsonRenderer) Audit(w io.Writer, a *catalog.AuditReport) error { return r.encode(w, a) }

func (r jsonRenderer) Version(w io.Writer, v *VersionReport) error { return r.encode(w, v) }

type yamlRenderer struct{}

func (yamlRenderer) encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r yamlRenderer) Dump(w io.Writer, d *Dump) error { return r.encode(w, d) }

func (r yamlRenderer) Audit(w io.Writer, a *catalog.AuditReport) error { return r.encode(w, a) }

func (r yamlRenderer) Version(w io.Writer, v *VersionReport) error { return r.encode(w, v) }
