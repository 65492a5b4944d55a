package insights

import (
	"sort"

	"fjacquet/finsight/internal/models"
)

// Rank drops insights whose confidence is not above minConfidence, orders the
// rest by severity then confidence (both descending, stable on ties) and keeps
// at most maxResults. A non-positive maxResults keeps everything.
func Rank(candidates []models.Insight, minConfidence float64, maxResults int) []models.Insight {
	ranked := make([]models.Insight, 0, len(candidates))
	for _, c := range candidates {
		if c.Confidence > minConfidence {
			ranked = append(ranked, c)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].Severity.Rank(), ranked[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
