package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is append-only; submissions feed the shop rating aggregate.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopID    primitive.ObjectID `bson:"shopId" json:"shopId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
