package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrItemIndex    = errors.New("cart item index out of range")
	ErrQuantity     = errors.New("quantity must be at least 1")
	ErrShopMismatch = errors.New("cart already holds items from another shop")
)

// CartItem keeps a snapshot of the food's name and unit price taken at
// add time. Later catalog edits never re-price lines already in a cart.
type CartItem struct {
	FoodID   primitive.ObjectID `bson:"foodId" json:"foodId"`
	ShopID   primitive.ObjectID `bson:"shopId" json:"shopId"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Subtotal float64            `bson:"subtotal" json:"subtotal"`
}

// Cart is the single open staging document per user. Version backs the
// optimistic check on every read-modify-write.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Items       []CartItem         `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	CheckedOut  bool               `bson:"checkedOut" json:"checkedOut"`
	Version     int64              `bson:"version" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Recompute rebuilds every subtotal and the cart total from scratch.
// Every mutation below ends with a Recompute so the total can never
// drift from the line items.
func (c *Cart) Recompute() {
	total := 0.0
	for i := range c.Items {
		c.Items[i].Subtotal = c.Items[i].Price * float64(c.Items[i].Quantity)
		total += c.Items[i].Subtotal
	}
	c.TotalAmount = total
}

// AddItem appends a line, or merges quantities when the same food from
// the same shop is already present. Carts are single-shop: an add from a
// different shop fails with ErrShopMismatch.
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity < 1 {
		return ErrQuantity
	}
	if shopID, ok := c.ShopID(); ok && shopID != item.ShopID {
		return ErrShopMismatch
	}
	for i := range c.Items {
		if c.Items[i].FoodID == item.FoodID && c.Items[i].ShopID == item.ShopID {
			c.Items[i].Quantity += item.Quantity
			c.Recompute()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.Recompute()
	return nil
}

func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrItemIndex
	}
	if quantity < 1 {
		return ErrQuantity
	}
	c.Items[index].Quantity = quantity
	c.Recompute()
	return nil
}

// RemoveItem deletes one line. Removing the last line leaves an empty,
// still-open cart.
func (c *Cart) RemoveItem(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrItemIndex
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	c.Recompute()
	return nil
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalAmount = 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ShopID returns the shop the cart is bound to, false when the cart is
// empty.
func (c *Cart) ShopID() (primitive.ObjectID, bool) {
	if len(c.Items) == 0 {
		return primitive.NilObjectID, false
	}
	return c.Items[0].ShopID, true
}

func (c *Cart) TotalQuantity() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
