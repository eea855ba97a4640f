package utils

import "testing"

func TestHaversineIdenticalPoints(t *testing.T) {
	if got := HaversineKm(0, 0, 0, 0); got != 0 {
		t.Errorf("HaversineKm(0,0,0,0) = %v, want 0", got)
	}
	if got := HaversineKm(77.59, 12.97, 77.59, 12.97); got != 0 {
		t.Errorf("distance to self = %v, want 0", got)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	ab := HaversineKm(77.59, 12.97, 72.87, 19.07)
	ba := HaversineKm(72.87, 19.07, 77.59, 12.97)
	if ab != ba {
		t.Errorf("asymmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("distance = %v, want > 0", ab)
	}
}

func TestHaversineOneDegreeOfLatitude(t *testing.T) {
	// One degree of latitude on a 6371 km sphere is ~111.19 km.
	got := HaversineKm(0, 0, 0, 1)
	if got != 111.19 {
		t.Errorf("HaversineKm(0,0,0,1) = %v, want 111.19", got)
	}
}

func TestEstimatedDeliveryMinutes(t *testing.T) {
	tests := []struct {
		distanceKm float64
		want       int
	}{
		{0, 20},  // 15 clamps up to the floor
		{1, 20},  // 18 clamps up
		{2, 21},  // round(6)+15
		{5, 30},  // reference: 15+15
		{10, 45}, // 30+15
		{15, 60}, // exactly at the ceiling
		{40, 60}, // clamps down
	}
	for _, tt := range tests {
		if got := EstimatedDeliveryMinutes(tt.distanceKm); got != tt.want {
			t.Errorf("EstimatedDeliveryMinutes(%v) = %d, want %d", tt.distanceKm, got, tt.want)
		}
	}
}

func TestEstimatedDeliveryMonotonic(t *testing.T) {
	prev := 0
	for km := 0.0; km <= 50; km += 0.5 {
		eta := EstimatedDeliveryMinutes(km)
		if eta < prev {
			t.Fatalf("ETA decreased at %v km: %d -> %d", km, prev, eta)
		}
		if eta < 20 || eta > 60 {
			t.Fatalf("ETA %d at %v km out of [20,60]", eta, km)
		}
		prev = eta
	}
}

func TestAdjustedDeliveryCharge(t *testing.T) {
	tests := []struct {
		base       float64
		distanceKm float64
		want       float64
	}{
		{30, 2, 30},   // within base radius
		{30, 5, 30},   // boundary is still base
		{30, 6, 32},   // +round(1)*2
		{30, 7.4, 34}, // +round(2.4)*2
		{30, 8.6, 38}, // +round(3.6)*2
		{0, 10, 10},   // surcharge on a free-delivery shop
	}
	for _, tt := range tests {
		if got := AdjustedDeliveryCharge(tt.base, tt.distanceKm); got != tt.want {
			t.Errorf("AdjustedDeliveryCharge(%v, %v) = %v, want %v", tt.base, tt.distanceKm, got, tt.want)
		}
	}
}
