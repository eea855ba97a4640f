package utils

import (
	"reflect"
	"testing"
)

func TestTrendingEligible(t *testing.T) {
	tests := []struct {
		name    string
		signals ShopSignals
		want    bool
	}{
		{"all weak", ShopSignals{RatingAverage: 3.5, WeeklyOrders: 2}, false},
		{"volume qualifies", ShopSignals{RatingAverage: 3.5, WeeklyOrders: 6}, true},
		{"volume boundary", ShopSignals{RatingAverage: 3.5, WeeklyOrders: 5}, true},
		{"rating qualifies", ShopSignals{RatingAverage: 4.0, WeeklyOrders: 0}, true},
		{"rating just below", ShopSignals{RatingAverage: 3.9, WeeklyOrders: 0}, false},
		{"featured qualifies", ShopSignals{Featured: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendingEligible(tt.signals); got != tt.want {
				t.Errorf("TrendingEligible(%+v) = %v, want %v", tt.signals, got, tt.want)
			}
		})
	}
}

func TestTrendingScore(t *testing.T) {
	tests := []struct {
		name    string
		signals ShopSignals
		want    float64
	}{
		{"all bonuses", ShopSignals{RatingAverage: 4.5, WeeklyOrders: 10, Featured: true, DistanceKm: 3}, 27},
		{"no proximity bonus", ShopSignals{RatingAverage: 4.5, WeeklyOrders: 10, Featured: true, DistanceKm: 8}, 24},
		{"proximity boundary", ShopSignals{RatingAverage: 4.0, WeeklyOrders: 0, DistanceKm: 5}, 11},
		{"bare", ShopSignals{RatingAverage: 4.0, DistanceKm: 100}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendingScore(tt.signals); got != tt.want {
				t.Errorf("TrendingScore(%+v) = %v, want %v", tt.signals, got, tt.want)
			}
		})
	}
}

func TestMatchScore(t *testing.T) {
	prefCuisines := []string{"indian", "chinese"}
	prefCategories := []string{"mains", "desserts"}

	tests := []struct {
		name           string
		shopCuisines   []string
		shopCategories []string
		rating         float64
		featured       bool
		want           float64
	}{
		{"two cuisine hits, rated, featured", []string{"indian", "chinese"}, nil, 4.2, true, 5},
		{"one of each", []string{"indian"}, []string{"desserts"}, 3.0, false, 2},
		{"no overlap low rating", []string{"mexican"}, []string{"starters"}, 3.9, false, 0},
		{"rating boundary", nil, nil, 4.0, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchScore(tt.shopCuisines, tt.shopCategories, prefCuisines, prefCategories, tt.rating, tt.featured)
			if got != tt.want {
				t.Errorf("MatchScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountIntersection(t *testing.T) {
	tests := []struct {
		a, b []string
		want int
	}{
		{[]string{"a", "b"}, []string{"b", "c"}, 1},
		{[]string{"a", "b"}, []string{"b", "b", "b"}, 1}, // duplicates count once
		{nil, []string{"a"}, 0},
		{[]string{"a"}, nil, 0},
		{[]string{"a", "b", "c"}, []string{"c", "a", "b"}, 3},
	}
	for _, tt := range tests {
		if got := CountIntersection(tt.a, tt.b); got != tt.want {
			t.Errorf("CountIntersection(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFirstDistinct(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		limit  int
		want   []string
	}{
		{"keeps discovery order", []string{"b", "a", "b", "c"}, 5, []string{"b", "a", "c"}},
		{"respects limit", []string{"a", "b", "c", "d"}, 2, []string{"a", "b"}},
		{"skips empties", []string{"", "a", "", "b"}, 5, []string{"a", "b"}},
		{"empty input", nil, 5, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstDistinct(tt.values, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FirstDistinct(%v, %d) = %v, want %v", tt.values, tt.limit, got, tt.want)
			}
		})
	}
}
