package models

import (
	"testing"
	"time"
)

func TestRatingAdd(t *testing.T) {
	tests := []struct {
		name        string
		rating      Rating
		newRating   int
		wantAverage float64
		wantCount   int
	}{
		{"reference example", Rating{Average: 4.0, Count: 10}, 5, 4.1, 11},
		{"first review", Rating{}, 3, 3.0, 1},
		{"rounds to one decimal", Rating{Average: 4.5, Count: 2}, 3, 4.0, 3},
		{"low pull", Rating{Average: 5.0, Count: 1}, 1, 3.0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rating.Add(tt.newRating)
			if got.Average != tt.wantAverage {
				t.Errorf("Average = %v, want %v", got.Average, tt.wantAverage)
			}
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", got.Count, tt.wantCount)
			}
		})
	}
}

func TestIsOpenAt(t *testing.T) {
	shop := &Shop{OpenTime: "09:00", CloseTime: "22:00"}

	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"midday", at(13, 30), true},
		{"opening minute", at(9, 0), true},
		{"before open", at(8, 59), false},
		{"closing minute is excluded", at(22, 0), false},
		{"just before close", at(21, 59), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shop.IsOpenAt(tt.t); got != tt.want {
				t.Errorf("IsOpenAt(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestIsOpenAtMalformedHours(t *testing.T) {
	shop := &Shop{OpenTime: "whenever", CloseTime: "22:00"}
	if shop.IsOpenAt(time.Now()) {
		t.Error("malformed opening hours must read as closed")
	}
}

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantErr  bool
	}{
		{"origin", 0, 0, false},
		{"valid", 77.59, 12.97, false},
		{"lon too small", -180.1, 0, true},
		{"lon too big", 180.1, 0, true},
		{"lat too small", 0, -90.1, true},
		{"lat too big", 0, 90.1, true},
		{"edges", 180, 90, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := NewGeoPoint(tt.lon, tt.lat)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGeoPoint(%v, %v) error = %v, wantErr %v", tt.lon, tt.lat, err, tt.wantErr)
			}
			if err == nil {
				if point.Type != "Point" {
					t.Errorf("Type = %q, want Point", point.Type)
				}
				if point.Lon() != tt.lon || point.Lat() != tt.lat {
					t.Errorf("round trip = (%v, %v), want (%v, %v)", point.Lon(), point.Lat(), tt.lon, tt.lat)
				}
			}
		})
	}
}
