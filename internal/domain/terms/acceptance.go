package terms

// IDs returns the ids of ts in order.
func IDs(ts []Terms) []uint64 {
	out := make([]uint64, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

// CoversExactly reports whether submitted, taken as a set, equals the ids of
// active. Duplicates in submitted count once.
func CoversExactly(submitted []uint64, active []Terms) bool {
	set := make(map[uint64]struct{}, len(submitted))
	for _, id := range submitted {
		set[id] = struct{}{}
	}
	if len(set) != len(active) {
		return false
	}
	for _, t := range active {
		if _, ok := set[t.ID]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the active terms for which no acceptance exists yet.
func Missing(active []Terms, accepted []AcceptTerms) []Terms {
	done := make(map[uint64]struct{}, len(accepted))
	for _, a := range accepted {
		done[a.TermsID] = struct{}{}
	}
	out := make([]Terms, 0, len(active))
	for _, t := range active {
		if _, ok := done[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}
