package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/cocatalog/internal/catalog"
	"github.com/tphakala/cocatalog/internal/errors"
	"gopkg.in/yaml.v3"
)

func ptr(f float64) *float64 { return &f }

func sampleDump() *Dump {
	tree := catalog.NewKeywordTree([]catalog.Keyword{
		{ID: 1, Name: "Places"},
		{ID: 2, Name: "Europe", Parent: 1},
		{ID: 3, Name: "Paris", Parent: 2},
		{ID: 4, Name: "People"},
	})
	return &Dump{
		Catalog:  Info{Path: "/photos/Sample.cocatalog", Version: 1200, Generation: "Co12", RootCollection: 1},
		Keywords: KeywordNodes(tree),
		Folders: FolderRows([]catalog.Folder{
			{ID: 2, RelativePath: "Imported", IsRelative: true},
			{ID: 1, Root: "/Volumes/Photos", RelativePath: "2023/Trip"},
		}, "/photos/Sample.cocatalog"),
		Images: []catalog.Image{{
			ID: 1, UUID: "6F9619FF-8B86-D011-B42D-00C04FC964FF", Folder: 1,
			Format: catalog.ImageFormatRAW, DisplayName: "IMG_0001", FileName: "IMG_0001.CR3",
			Latitude: ptr(48.8584), Longitude: ptr(2.2945),
		}},
		Stacks: []catalog.Stack{
			{ID: 1, Collection: 5, Pick: 1, Content: catalog.Loaded([]catalog.ID{1, 2})},
			{ID: 2, Collection: 5},
		},
		Collections: CollectionRows([]catalog.Collection{
			{ID: 5, Parent: 1, Type: catalog.Album{Name: "Trip"}, Content: catalog.Loaded([]catalog.ID{})},
			{ID: 1, Type: catalog.Project{}},
		}),
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := NewRenderer("xml")
	assert.Error(t, err)
}

func TestFolderPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		folder catalog.Folder
		dir    string
		want   string
	}{
		{"absolute", catalog.Folder{Root: "/Volumes/Photos", RelativePath: "2023/Trip"}, "/cat", "/Volumes/Photos/2023/Trip"},
		{"relative to catalog", catalog.Folder{RelativePath: "Imported", IsRelative: true}, "/cat", "/cat/Imported"},
		{"relative with root", catalog.Folder{Root: "Originals", RelativePath: "A", IsRelative: true}, "/cat", "/cat/Originals/A"},
		{"relative without catalog dir", catalog.Folder{RelativePath: "Imported", IsRelative: true}, "", "Imported"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FolderPath(tt.folder, tt.dir), tt.name)
	}
}

func TestKeywordNodesNest(t *testing.T) {
	t.Parallel()

	d := sampleDump()
	assert.Equal(t, []KeywordNode{
		{ID: 1, Name: "Places", Children: []KeywordNode{
			{ID: 2, Name: "Europe", Children: []KeywordNode{{ID: 3, Name: "Paris"}}},
		}},
		{ID: 4, Name: "People"},
	}, d.Keywords)
}

func TestKeywordNodesSkipCycles(t *testing.T) {
	t.Parallel()

	tree := catalog.NewKeywordTree([]catalog.Keyword{
		{ID: 1, Name: "ok"},
		{ID: 2, Name: "loop", Parent: 3},
		{ID: 3, Name: "loop", Parent: 2},
	})
	assert.Equal(t, []KeywordNode{{ID: 1, Name: "ok"}}, KeywordNodes(tree))
}

func TestRowsAreSortedByID(t *testing.T) {
	t.Parallel()

	d := sampleDump()
	assert.Equal(t, catalog.ID(1), d.Folders[0].ID)
	assert.Equal(t, "/photos/Sample.cocatalog/Imported", d.Folders[1].Path)
	assert.Equal(t, catalog.ID(1), d.Collections[0].ID)
	assert.Equal(t, "root", d.Collections[0].Name)
	assert.Equal(t, "album", d.Collections[1].Kind)

	images := SortedImages([]catalog.Image{{ID: 3}, {ID: 1}})
	assert.Equal(t, catalog.ID(1), images[0].ID)
	stacks := SortedStacks([]catalog.Stack{{ID: 9}, {ID: 2}})
	assert.Equal(t, catalog.ID(2), stacks[0].ID)
}

func TestJSONDump(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(FormatJSON)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, r.Dump(buf, sampleDump()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "Co12", got["catalog"].(map[string]any)["generation"])
	folders := got["folders"].([]any)
	assert.Equal(t, "/Volumes/Photos/2023/Trip", folders[0].(map[string]any)["path"])
	assert.Equal(t, "2023/Trip", folders[0].(map[string]any)["relative_path"])

	image := got["images"].([]any)[0].(map[string]any)
	assert.Equal(t, "RAW", image["format"])
	assert.NotContains(t, image, "gps_altitude")

	stacks := got["stacks"].([]any)
	assert.Equal(t, []any{1.0, 2.0}, stacks[0].(map[string]any)["content"])
	assert.Nil(t, stacks[1].(map[string]any)["content"], "unresolved content is null")

	collections := got["collections"].([]any)
	assert.Equal(t, []any{}, collections[1].(map[string]any)["content"], "resolved empty content is []")
}

func TestYAMLDump(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(FormatYAML)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, r.Dump(buf, sampleDump()))

	var got struct {
		Catalog Info `yaml:"catalog"`
		Folders []struct {
			ID   int64  `yaml:"id"`
			Path string `yaml:"path"`
		} `yaml:"folders"`
		Images []struct {
			Format string `yaml:"format"`
		} `yaml:"images"`
		Stacks []struct {
			Content []int64 `yaml:"content"`
		} `yaml:"stacks"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, int64(1200), got.Catalog.Version)
	require.Len(t, got.Folders, 2)
	assert.Equal(t, "/Volumes/Photos/2023/Trip", got.Folders[0].Path)
	assert.Equal(t, "RAW", got.Images[0].Format)
	assert.Equal(t, []int64{1, 2}, got.Stacks[0].Content)
	assert.Nil(t, got.Stacks[1].Content)
}

func TestTableDump(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(FormatTable)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, r.Dump(buf, sampleDump()))
	out := buf.String()

	assert.Contains(t, out, "Version: 1200 (Co12)")
	assert.Contains(t, out, "Root collection id: 1")
	for _, section := range []string{"Keywords", "Folders", "Images", "Stacks", "Collections"} {
		assert.Contains(t, out, section+"\n")
	}
	assert.Contains(t, out, "    Paris", "nested keywords are indented")
	assert.Contains(t, out, `Alb: "Trip"`)
	assert.Contains(t, out, "[1,2]")
	assert.Contains(t, out, "48.8584")
}

func TestTableDumpOmitsUnselectedSections(t *testing.T) {
	t.Parallel()

	d := sampleDump()
	d.Images = nil
	d.Stacks = nil

	buf := &bytes.Buffer{}
	require.NoError(t, tableRenderer{}.Dump(buf, d))
	assert.NotContains(t, buf.String(), "Images\n")
	assert.NotContains(t, buf.String(), "Stacks\n")
}

func TestAuditRenderers(t *testing.T) {
	t.Parallel()

	a := &catalog.AuditReport{
		Version: "Co12",
		Findings: []catalog.Finding{
			{Kind: catalog.FindingSkippedCollection, Table: "ZCOLLECTION", RowID: 8, Detail: "unhandled SmartAlbumCollection (unknown_subtype)"},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, tableRenderer{}.Audit(buf, a))
	assert.Contains(t, buf.String(), "Audit (Co12)")
	assert.Contains(t, buf.String(), "SmartAlbumCollection")

	buf.Reset()
	require.NoError(t, tableRenderer{}.Audit(buf, &catalog.AuditReport{Version: "Co12"}))
	assert.Contains(t, buf.String(), "Nothing ignored.")

	buf.Reset()
	require.NoError(t, jsonRenderer{}.Audit(buf, a))
	assert.JSONEq(t, `{"version":"Co12","findings":[{"kind":"skipped_collection","table":"ZCOLLECTION","row_id":8,
		"detail":"unhandled SmartAlbumCollection (unknown_subtype)"}]}`, buf.String())
}

func TestVersionRenderers(t *testing.T) {
	t.Parallel()

	v := &VersionReport{
		Catalog:  Info{Version: 1200, Generation: "Co12", RootCollection: 1},
		Entities: []catalog.RegistryEntry{{ID: 5, Name: "ProjectCollection"}, {ID: 17, Name: "Image"}},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, tableRenderer{}.Version(buf, v))
	assert.Contains(t, buf.String(), "Entities")
	assert.Contains(t, buf.String(), "ProjectCollection")

	buf.Reset()
	require.NoError(t, yamlRenderer{}.Version(buf, v))
	assert.Contains(t, buf.String(), "name: Image")
}
