package utils

// ShopSignals carries the per-shop inputs the trending score reads.
type ShopSignals struct {
	RatingAverage float64
	WeeklyOrders  int // orders delivered in the trailing 7 days
	Featured      bool
	DistanceKm    float64
}

// TrendingEligible filters shops into the trending list: a shop shows up
// once it has a strong rating, real recent volume, or a featured slot.
func TrendingEligible(s ShopSignals) bool {
	return s.RatingAverage >= 4.0 || s.WeeklyOrders >= 5 || s.Featured
}

// TrendingScore weights rating, weekly delivered volume, the featured
// slot, and proximity into one popularity signal.
func TrendingScore(s ShopSignals) float64 {
	score := 2*s.RatingAverage + float64(s.WeeklyOrders)
	if s.Featured {
		score += 5
	}
	if s.DistanceKm <= 5 {
		score += 3
	}
	return score
}

// MatchScore ranks a shop against a user's historical cuisine and
// category preferences.
func MatchScore(shopCuisines, shopCategories, prefCuisines, prefCategories []string, ratingAverage float64, featured bool) float64 {
	score := float64(CountIntersection(shopCuisines, prefCuisines)) +
		float64(CountIntersection(shopCategories, prefCategories))
	if ratingAverage >= 4 {
		score += 2
	}
	if featured {
		score += 1
	}
	return score
}

// CountIntersection counts distinct values present in both slices.
func CountIntersection(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	seen := make(map[string]bool, len(b))
	n := 0
	for _, v := range b {
		if set[v] && !seen[v] {
			seen[v] = true
			n++
		}
	}
	return n
}

// FirstDistinct takes the first limit distinct values in discovery
// order. Feeding it orders sorted newest-first biases preferences toward
// recent behavior.
func FirstDistinct(values []string, limit int) []string {
	seen := make(map[string]bool, limit)
	out := make([]string, 0, limit)
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
