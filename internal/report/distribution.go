package report

import (
	"sort"

	"feedbackclassifier/internal/domain"
)

// Distribution counts predicted categories, most frequent first. Ties keep
// category-set order and Unknown sorts after every real category.
func Distribution(preds []domain.Prediction, cats domain.CategorySet) domain.CategoryDistribution {
	counts := make(map[string]int)
	for _, p := range preds {
		counts[p.Category()]++
	}

	dist := make(domain.CategoryDistribution, 0, len(counts))
	for category, n := range counts {
		dist = append(dist, domain.CategoryCount{Category: category, Count: n})
	}
	rankOf := func(category string) int {
		if idx := cats.Index(category); idx >= 0 {
			return idx
		}
		return len(cats)
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		ri, rj := rankOf(dist[i].Category), rankOf(dist[j].Category)
		if ri != rj {
			return ri < rj
		}
		return dist[i].Category < dist[j].Category
	})
	return dist
}
