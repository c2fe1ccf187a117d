package search

// GroupByBounds partitions hits by the bounds that fully contain them. The result
// has one bucket per bound, in the order of bounds; bucket i keeps the hits with
// Start >= bounds[i].Start and End <= bounds[i].End in their original order.
// Hits contained in no bound are dropped.
func GroupByBounds(hits, bounds []Span) [][]Span {
	result := make([][]Span, 0, len(bounds))
	for _, bound := range bounds {
		inside := []Span{}
		for _, hit := range hits {
			if hit.Start >= bound.Start && hit.End <= bound.End {
				inside = append(inside, hit)
			}
		}
		result = append(result, inside)
	}
	return result
}

// LocateContainingBound returns the index of the first bound whose inclusive range
// [Start, End] contains both ends of position.
func LocateContainingBound(position Span, bounds []Span) (int, bool) {
	for i, bound := range bounds {
		if position.Start >= bound.Start && position.Start <= bound.End &&
			position.End >= bound.Start && position.End <= bound.End {
			return i, true
		}
	}
	return -1, false
}

// Localize shifts hits into coordinates relative to offset, the start of the unit
// that contains them.
func Localize(hits []Span, offset int) []Span {
	local := make([]Span, 0, len(hits))
	for _, hit := range hits {
		local = append(local, Span{Start: hit.Start - offset, End: hit.End - offset})
	}
	return local
}
