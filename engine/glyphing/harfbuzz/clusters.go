package harfbuzz

import "sort"

// clusterSizes computes, for every glyph of a shaping result, the number of
// bytes of the shaped text it stands for. A cluster extends up to the next
// larger cluster value, or up to textLen for the last one, so that the
// clusters partition the text. If several glyphs share a cluster
// (decompositions, marks), the first of them gets the whole span and the
// others get 0. Spans never extend beyond textLen, and clusters at or
// beyond textLen get 0.
//
// Shaping left-to-right produces non-decreasing clusters, but clusterSizes
// does not rely on it.
func clusterSizes(glyphs []RawGlyph, textLen int) []int {
	sizes := make([]int, len(glyphs))
	if len(glyphs) == 0 {
		return sizes
	}
	starts := make([]int, 0, len(glyphs))
	for _, g := range glyphs {
		starts = append(starts, int(g.Cluster))
	}
	sort.Ints(starts)
	seen := make(map[uint32]bool, len(glyphs))
	for i, g := range glyphs {
		if seen[g.Cluster] {
			continue
		}
		seen[g.Cluster] = true
		pos := int(g.Cluster)
		next := textLen
		if j := sort.SearchInts(starts, pos+1); j < len(starts) {
			next = starts[j]
		}
		if next > textLen {
			next = textLen
		}
		if next > pos {
			sizes[i] = next - pos
		}
	}
	return sizes
}

// unmappedClusters collects the clusters containing at least one glyph with
// ID 0. Such a cluster has to be shaped with a fallback font as a whole.
func unmappedClusters(glyphs []RawGlyph) map[uint32]bool {
	var unmapped map[uint32]bool
	for _, g := range glyphs {
		if g.GlyphID == 0 {
			if unmapped == nil {
				unmapped = make(map[uint32]bool)
			}
			unmapped[g.Cluster] = true
		}
	}
	return unmapped
}
