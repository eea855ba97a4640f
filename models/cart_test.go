package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sumSubtotals(c *Cart) float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return total
}

func TestCartTotalMatchesSubtotals(t *testing.T) {
	shopID := primitive.NewObjectID()
	foodA := primitive.NewObjectID()
	foodB := primitive.NewObjectID()

	cart := &Cart{}

	if err := cart.AddItem(CartItem{FoodID: foodA, ShopID: shopID, Name: "Biryani", Price: 100, Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cart.AddItem(CartItem{FoodID: foodB, ShopID: shopID, Name: "Lassi", Price: 40, Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cart.UpdateQuantity(1, 3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if err := cart.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	if got, want := cart.TotalAmount, sumSubtotals(cart); got != want {
		t.Errorf("TotalAmount = %v, sum of subtotals = %v", got, want)
	}
	if cart.TotalAmount != 120 {
		t.Errorf("TotalAmount = %v, want 120", cart.TotalAmount)
	}
}

func TestAddItemMergesSameFood(t *testing.T) {
	shopID := primitive.NewObjectID()
	foodID := primitive.NewObjectID()

	cart := &Cart{}
	item := CartItem{FoodID: foodID, ShopID: shopID, Name: "Dosa", Price: 80, Quantity: 1}

	if err := cart.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cart.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1 merged line", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", cart.Items[0].Quantity)
	}
	if cart.Items[0].Subtotal != 160 {
		t.Errorf("Subtotal = %v, want 160", cart.Items[0].Subtotal)
	}
	if cart.TotalAmount != 160 {
		t.Errorf("TotalAmount = %v, want 160", cart.TotalAmount)
	}
}

func TestAddItemRejectsSecondShop(t *testing.T) {
	cart := &Cart{}
	shopA := primitive.NewObjectID()
	shopB := primitive.NewObjectID()

	if err := cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: shopA, Price: 50, Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	err := cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: shopB, Price: 60, Quantity: 1})
	if err != ErrShopMismatch {
		t.Fatalf("AddItem from second shop = %v, want ErrShopMismatch", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("rejected add must not change the cart, len(Items) = %d", len(cart.Items))
	}
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	cart := &Cart{}
	err := cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: primitive.NewObjectID(), Price: 50})
	if err != ErrQuantity {
		t.Fatalf("AddItem with qty 0 = %v, want ErrQuantity", err)
	}
}

func TestUpdateQuantityValidation(t *testing.T) {
	cart := &Cart{}
	_ = cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: primitive.NewObjectID(), Price: 10, Quantity: 1})

	tests := []struct {
		name     string
		index    int
		quantity int
		wantErr  error
	}{
		{"negative index", -1, 2, ErrItemIndex},
		{"index past end", 1, 2, ErrItemIndex},
		{"zero quantity", 0, 0, ErrQuantity},
		{"valid", 0, 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cart.UpdateQuantity(tt.index, tt.quantity); err != tt.wantErr {
				t.Errorf("UpdateQuantity(%d, %d) = %v, want %v", tt.index, tt.quantity, err, tt.wantErr)
			}
		})
	}

	if cart.TotalAmount != 50 {
		t.Errorf("TotalAmount = %v, want 50", cart.TotalAmount)
	}
}

func TestRemoveLastItemLeavesEmptyCart(t *testing.T) {
	cart := &Cart{}
	_ = cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: primitive.NewObjectID(), Price: 10, Quantity: 1})

	if err := cart.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("cart should be empty after removing the last item")
	}
	if cart.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0", cart.TotalAmount)
	}
	if _, ok := cart.ShopID(); ok {
		t.Error("empty cart must not report a shop binding")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	cart := &Cart{}
	_ = cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: primitive.NewObjectID(), Price: 10, Quantity: 2})

	cart.Clear()
	cart.Clear()

	if !cart.IsEmpty() || cart.TotalAmount != 0 {
		t.Errorf("after Clear: items = %d, total = %v", len(cart.Items), cart.TotalAmount)
	}
}

func TestSnapshotPriceSurvivesRecompute(t *testing.T) {
	cart := &Cart{}
	_ = cart.AddItem(CartItem{FoodID: primitive.NewObjectID(), ShopID: primitive.NewObjectID(), Price: 100, Quantity: 2})

	// A later catalog price change never touches the snapshot.
	cart.Recompute()

	if cart.Items[0].Price != 100 {
		t.Errorf("snapshot price = %v, want 100", cart.Items[0].Price)
	}
	if cart.Items[0].Subtotal != 200 || cart.TotalAmount != 200 {
		t.Errorf("subtotal = %v, total = %v, want 200/200", cart.Items[0].Subtotal, cart.TotalAmount)
	}
}
