package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is stored as a GeoJSON Point so the shops collection can carry
// a 2dsphere index for $geoNear queries. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lon, lat float64) (GeoPoint, error) {
	if lon < -180 || lon > 180 {
		return GeoPoint{}, fmt.Errorf("longitude %v out of range [-180,180]", lon)
	}
	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("latitude %v out of range [-90,90]", lat)
	}
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}, nil
}

func (p GeoPoint) Lon() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Add folds one new review rating into the aggregate without rescanning
// past reviews. The average is kept to one decimal place.
func (r Rating) Add(rating int) Rating {
	newAvg := (r.Average*float64(r.Count) + float64(rating)) / float64(r.Count+1)
	return Rating{
		Average: math.Round(newAvg*10) / 10,
		Count:   r.Count + 1,
	}
}

type Shop struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	LicenseID         string             `bson:"licenseId" json:"licenseId"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	Address           string             `bson:"address" json:"address"`
	Location          GeoPoint           `bson:"location" json:"location"`
	Cuisine           []string           `bson:"cuisine" json:"cuisine"`
	MenuCategory      []string           `bson:"menuCategory" json:"menuCategory"`
	Rating            Rating             `bson:"rating" json:"rating"`
	OpenTime          string             `bson:"openTime" json:"openTime"`   // HH:MM
	CloseTime         string             `bson:"closeTime" json:"closeTime"` // HH:MM
	IsActive          bool               `bson:"isActive" json:"isActive"`
	IsVerified        bool               `bson:"isVerified" json:"isVerified"`
	IsFeatured        bool               `bson:"isFeatured" json:"isFeatured"`
	DeliveryAvailable bool               `bson:"deliveryAvailable" json:"deliveryAvailable"`
	DeliveryCharge    float64            `bson:"deliveryCharge" json:"deliveryCharge"`
	OwnerID           primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsOpenAt reports whether t falls inside [openTime, closeTime). Malformed
// hours are treated as closed.
func (s *Shop) IsOpenAt(t time.Time) bool {
	openMin, err1 := parseClock(s.OpenTime)
	closeMin, err2 := parseClock(s.CloseTime)
	if err1 != nil || err2 != nil {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	return now >= openMin && now < closeMin
}

func parseClock(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", hhmm)
	}
	return h*60 + m, nil
}
