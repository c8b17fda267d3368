package catalog

import "slices"

func sortIDs(ids []ID) {
	slices.Sort(ids)
}

func idSet[T any](items []T, id func(T) ID) map[ID]struct{} {
	set := make(map[ID]struct{}, len(items))
	for _, item := range items {
		set[id(item)] = struct{}{}
	}
	return set
}
