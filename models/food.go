package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Food struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Price       float64            `bson:"price" json:"price" binding:"required,gte=1"`
	CookingTime int                `bson:"cookingTime" json:"cookingTime" binding:"required,gte=1"` // minutes
	InStock     bool               `bson:"inStock" json:"inStock"`
	IsVeg       bool               `bson:"isVeg" json:"isVeg"`
	IsBeverage  bool               `bson:"isBeverage" json:"isBeverage"`
	Cuisine     string             `bson:"cuisine" json:"cuisine"`
	CategoryID  primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	ShopID      primitive.ObjectID `bson:"shopId" json:"shopId"`
	OrderCount  int                `bson:"orderCount" json:"orderCount"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
