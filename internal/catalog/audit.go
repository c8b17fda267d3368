package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tphakala/cocatalog/internal/logger"
)

// FindingKind classifies an audit finding.
type FindingKind string

const (
	FindingSkippedCollection     FindingKind = "skipped_collection"
	FindingDanglingFolder        FindingKind = "dangling_folder"
	FindingMissingPick           FindingKind = "missing_pick"
	FindingMissingCollection     FindingKind = "missing_collection"
	FindingDanglingStackMember   FindingKind = "dangling_stack_member"
	FindingDanglingKeywordParent FindingKind = "dangling_keyword_parent"
	FindingKeywordCycle          FindingKind = "keyword_cycle"
	FindingMalformedUUID         FindingKind = "malformed_uuid"
)

// FindingKinds lists every kind in report order.
var FindingKinds = []FindingKind{
	FindingSkippedCollection,
	FindingDanglingFolder,
	FindingMissingPick,
	FindingMissingCollection,
	FindingDanglingStackMember,
	FindingDanglingKeywordParent,
	FindingKeywordCycle,
	FindingMalformedUUID,
}

// Finding is one thing loading ignored or could not connect.
type Finding struct {
	Kind   FindingKind `json:"kind" yaml:"kind"`
	Table  string      `json:"table" yaml:"table"`
	RowID  ID          `json:"row_id" yaml:"row_id"`
	Ref    ID          `json:"ref,omitempty" yaml:"ref,omitempty"`
	Detail string      `json:"detail" yaml:"detail"`
}

// AuditReport is the outcome of Audit.
type AuditReport struct {
	Version  string    `json:"version" yaml:"version"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Count returns the number of findings of kind.
func (r *AuditReport) Count(kind FindingKind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Audit loads everything and reports what loading dropped and which
// references do not resolve. It never changes the catalog.
func (c *Catalog) Audit() (*AuditReport, error) {
	keywords, err := c.LoadKeywords()
	if err != nil {
		return nil, err
	}
	folders, err := c.LoadFolders()
	if err != nil {
		return nil, err
	}
	images, err := c.LoadImages()
	if err != nil {
		return nil, err
	}
	stacks, err := c.LoadStacks()
	if err != nil {
		return nil, err
	}
	collections, err := c.LoadCollections()
	if err != nil {
		return nil, err
	}

	r := &AuditReport{Version: c.version.String(), Findings: []Finding{}}
	skipped := c.SkippedCollections()
	for _, s := range skipped {
		name := s.EntityName
		if name == "" {
			name = fmt.Sprintf("entity %d", s.EntityID)
		}
		r.add(FindingSkippedCollection, s.Table, s.RowID, 0, "unhandled %s (%s)", name, s.Reason)
	}

	auditImages(r, images, folders)
	auditStacks(r, stacks, images, collections, skipped)
	auditKeywords(r, keywords)

	for _, kind := range FindingKinds {
		n := r.Count(kind)
		if c.metrics != nil {
			c.metrics.SetAuditFindings(string(kind), n)
		}
		if n > 0 {
			c.log.Info("audit findings", logger.String("kind", string(kind)), logger.Int("count", n))
		}
	}
	return r, nil
}

func (r *AuditReport) add(kind FindingKind, table string, row, ref ID, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Kind:   kind,
		Table:  table,
		RowID:  row,
		Ref:    ref,
		Detail: fmt.Sprintf(format, args...),
	})
}

func auditImages(r *AuditReport, images []Image, folders []Folder) {
	folderIDs := idSet(folders, func(f Folder) ID { return f.ID })
	for _, img := range images {
		if _, ok := folderIDs[img.Folder]; !ok {
			r.add(FindingDanglingFolder, "ZIMAGE", img.ID, img.Folder, "folder %d not found", img.Folder)
		}
		if _, err := uuid.Parse(img.UUID); err != nil {
			r.add(FindingMalformedUUID, "ZIMAGE", img.ID, 0, "uuid %q: %v", img.UUID, err)
		}
	}
}

func auditStacks(r *AuditReport, stacks []Stack, images []Image, collections []Collection, skipped []SkippedRow) {
	imageIDs := idSet(images, func(i Image) ID { return i.ID })
	collectionIDs := idSet(collections, func(c Collection) ID { return c.ID })
	// stacks of skipped collections still have a home
	for _, s := range skipped {
		collectionIDs[s.RowID] = struct{}{}
	}

	for _, s := range stacks {
		if s.Pick != 0 {
			if _, ok := imageIDs[s.Pick]; !ok {
				r.add(FindingMissingPick, "ZSTACK", s.ID, s.Pick, "pick image %d not found", s.Pick)
			}
		}
		if s.Collection != 0 {
			if _, ok := collectionIDs[s.Collection]; !ok {
				r.add(FindingMissingCollection, "ZSTACK", s.ID, s.Collection, "collection %d not found", s.Collection)
			}
		}
		members, _ := s.Content.Get()
		for _, id := range members {
			if _, ok := imageIDs[id]; !ok {
				r.add(FindingDanglingStackMember, "ZSTACKIMAGELINK", s.ID, id, "member image %d not found", id)
			}
		}
	}
}

func auditKeywords(r *AuditReport, keywords []Keyword) {
	parents := make(map[ID]ID, len(keywords))
	for _, k := range keywords {
		parents[k.ID] = k.Parent
	}

	for _, k := range keywords {
		if k.Parent == RootKeywordID {
			continue
		}
		if _, ok := parents[k.Parent]; !ok {
			r.add(FindingDanglingKeywordParent, "ZKEYWORD", k.ID, k.Parent, "parent keyword %d not found", k.Parent)
		}
	}

	for _, id := range keywordCycleMembers(keywords, parents) {
		r.add(FindingKeywordCycle, "ZKEYWORD", id, parents[id], "keyword %d is on a parent cycle", id)
	}
}

// keywordCycleMembers returns, sorted, every keyword whose parent chain
// leads back to itself.
func keywordCycleMembers(keywords []Keyword, parents map[ID]ID) []ID {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[ID]int, len(keywords))
	onCycle := make(map[ID]struct{})

	for _, k := range keywords {
		var path []ID
		pos := make(map[ID]int)
		id := k.ID
		for {
			if state[id] == done {
				break
			}
			if state[id] == inProgress {
				for _, member := range path[pos[id]:] {
					onCycle[member] = struct{}{}
				}
				break
			}
			parent, known := parents[id]
			state[id] = inProgress
			pos[id] = len(path)
			path = append(path, id)
			if !known || parent == RootKeywordID {
				break
			}
			id = parent
		}
		for _, p := range path {
			state[p] = done
		}
	}

	out := make([]ID, 0, len(onCycle))
	for id := range onCycle {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}
