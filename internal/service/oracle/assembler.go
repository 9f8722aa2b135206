package oracle

import (
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/memory"
)

// AssembleContext lists the realtime snapshots in source order followed by
// every memory item relevant to the query. Nothing is ranked or capped.
func AssembleContext(query string, snapshots []core.Snapshot, items []core.MemoryItem) []core.ContextItem {
	bySource := make(map[core.Source]core.Snapshot, len(snapshots))
	for _, s := range snapshots {
		bySource[s.Source] = s
	}

	out := make([]core.ContextItem, 0, len(core.Sources))
	for _, src := range core.Sources {
		snap, ok := bySource[src]
		if !ok {
			snap = core.Snapshot{Source: src, Status: core.StatusLoading}
		}
		out = append(out, core.ContextItem{
			Kind:     core.ContextRealtime,
			Source:   src,
			Snapshot: &snap,
		})
	}

	for _, item := range memory.Match(items, query) {
		out = append(out, core.ContextItem{
			Kind:   core.ContextMemory,
			Memory: &item,
		})
	}
	return out
}

func snapshotOf(items []core.ContextItem, src core.Source) *core.Snapshot {
	for _, item := range items {
		if item.Kind == core.ContextRealtime && item.Source == src {
			return item.Snapshot
		}
	}
	return nil
}
