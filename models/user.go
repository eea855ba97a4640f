package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Label   string `bson:"label" json:"label"`
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	Pincode string `bson:"pincode" json:"pincode"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Addresses []Address          `bson:"addresses,omitempty" json:"addresses,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)
