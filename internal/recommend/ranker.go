package recommend

import "sort"

const (
	// DefaultTopK is the number of products returned when the caller
	// does not ask for a specific count.
	DefaultTopK = 5

	// maxPerCategory caps how many products of one category an apriori
	// result may contain.
	maxPerCategory = 2
)

// Apriori unions the association-table entries keyed by any of the
// given products, orders candidates by confidence descending (stable,
// so discovery order breaks ties), and walks the list skipping
// duplicates and enforcing the per-category cap until topK products are
// selected. It returns a possibly empty list and never errors.
func (t *Tables) Apriori(products []string, topK int) []string {
	var candidates []Rule
	for _, product := range products {
		candidates = append(candidates, t.assoc[product]...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Conf > candidates[j].Conf
	})

	var picks []string
	seen := make(map[string]bool)
	perCategory := make(map[string]int)

	for _, c := range candidates {
		if seen[c.Product] {
			continue
		}
		if perCategory[c.Category] >= maxPerCategory {
			continue
		}
		perCategory[c.Category]++
		seen[c.Product] = true
		picks = append(picks, c.Product)

		if len(picks) >= topK {
			break
		}
	}
	return picks
}

// Popular ranks the popularity table by transaction count descending
// and returns up to topK product names. A nil or empty category list
// means the whole table; an unknown category yields an empty result.
func (t *Tables) Popular(categories []string, topK int) []string {
	rows := t.popularity
	if len(categories) > 0 {
		wanted := make(map[string]bool, len(categories))
		for _, c := range categories {
			wanted[c] = true
		}
		filtered := make([]PopularityRow, 0, len(rows))
		for _, row := range rows {
			if wanted[row.Category] {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	} else {
		rows = append([]PopularityRow(nil), rows...)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Transactions > rows[j].Transactions
	})

	var picks []string
	for _, row := range rows {
		if len(picks) >= topK {
			break
		}
		picks = append(picks, row.Product)
	}
	return picks
}
