package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func pattern(name string) FlyPattern {
	return FlyPattern{Name: name, Type: "nymph", BestFor: "trout"}
}

func TestAddFavorite_Dedupe(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, "s1", pattern("Pheasant Tail")))
	require.NoError(t, svc.AddFavorite(ctx, "s1", pattern("Pheasant Tail")))

	favs, err := svc.Favorites(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotEmpty(t, favs[0].CreatedAt)
}

func TestRemoveFavorite(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, "s1", pattern("Adams")))
	require.NoError(t, svc.AddFavorite(ctx, "s1", pattern("Elk Hair Caddis")))
	require.NoError(t, svc.RemoveFavorite(ctx, "s1", "Adams"))

	favs, err := svc.Favorites(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, "Elk Hair Caddis", favs[0].Name)
}

func TestFavorites_PerUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, "s1", pattern("Adams")))

	favs, err := svc.Favorites(ctx, "s2")
	require.NoError(t, err)
	require.Empty(t, favs)
}

func TestAddToList_QuantityBump(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	qty, err := svc.AddToList(ctx, "s1", pattern("Woolly Bugger"), 3.00)
	require.NoError(t, err)
	require.Equal(t, 1, qty)

	qty, err = svc.AddToList(ctx, "s1", pattern("Woolly Bugger"), 3.00)
	require.NoError(t, err)
	require.Equal(t, 2, qty)

	items, err := svc.ShoppingList(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, 3.00, items[0].Price)
}

func TestAddToList_DefaultPrice(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddToList(ctx, "s1", pattern("Adams"), 0)
	require.NoError(t, err)

	items, err := svc.ShoppingList(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, DefaultFlyPrice, items[0].Price)
}

func TestSetQuantity(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddToList(ctx, "s1", pattern("Adams"), 2.00)
	require.NoError(t, err)
	require.NoError(t, svc.SetQuantity(ctx, "s1", "Adams", 7))

	items, err := svc.ShoppingList(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 7, items[0].Quantity)

	// unknown names are a no-op
	require.NoError(t, svc.SetQuantity(ctx, "s1", "Nope", 3))
}

func TestRemoveFromList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddToList(ctx, "s1", pattern("Adams"), 2.00)
	require.NoError(t, err)
	_, err = svc.AddToList(ctx, "s1", pattern("Caddis"), 2.00)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromList(ctx, "s1", "Adams"))
	items, err := svc.ShoppingList(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Caddis", items[0].Name)
}

func TestClearList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddToList(ctx, "s1", pattern("Adams"), 2.00)
	require.NoError(t, err)
	require.NoError(t, svc.ClearList(ctx, "s1"))

	items, err := svc.ShoppingList(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestPlaceOrder(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddToList(ctx, "s1", pattern("Adams"), 2.00)
	require.NoError(t, err)
	_, err = svc.AddToList(ctx, "s1", pattern("Adams"), 2.00)
	require.NoError(t, err)
	_, err = svc.AddToList(ctx, "s1", pattern("Caddis"), 1.50)
	require.NoError(t, err)

	order, err := svc.PlaceOrder(ctx, "s1", "rush please")
	require.NoError(t, err)
	require.Equal(t, "pending", order.Status)
	require.Equal(t, 3, order.TotalFlies)
	require.InDelta(t, 5.50, order.TotalAmount, 0.001)
	require.Equal(t, "rush please", order.Notes)
	require.NotZero(t, order.ID)

	// list is cleared, order is in the history
	items, err := svc.ShoppingList(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, items)

	orders, err := svc.Orders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, order.ID, orders[0].ID)
}

func TestPlaceOrder_EmptyList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.PlaceOrder(context.Background(), "s1", "")
	require.ErrorIs(t, err, ErrEmptyList)
}

func TestPlaceOrder_NewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddToList(ctx, "s1", pattern("Adams"), 2.00)
	require.NoError(t, err)
	first, err := svc.PlaceOrder(ctx, "s1", "")
	require.NoError(t, err)

	_, err = svc.AddToList(ctx, "s1", pattern("Caddis"), 2.00)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, "s1", "")
	require.NoError(t, err)

	orders, err := svc.Orders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
}

func TestCatalog_AddUpdateDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddPattern(ctx, FlyPattern{Name: "Adams", Type: "dry", Description: "classic"})
	require.NoError(t, err)

	// empty incoming fields keep their stored values
	catalog, err := svc.UpdatePattern(ctx, "Adams", FlyPattern{Name: "Adams Parachute"})
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	require.Equal(t, "Adams Parachute", catalog[0].Name)
	require.Equal(t, "dry", catalog[0].Type)
	require.Equal(t, "classic", catalog[0].Description)

	catalog, err = svc.DeletePattern(ctx, "Adams Parachute")
	require.NoError(t, err)
	require.Empty(t, catalog)
}

func TestCatalog_UpdateMissing(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.UpdatePattern(context.Background(), "Nope", FlyPattern{Name: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_DeleteMissing(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.DeletePattern(context.Background(), "Nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddStockItem_AssignsIDs(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	items, err := svc.AddStockItem(ctx, StockItem{Name: "Adams", Category: "dry", Qty: 12})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), items[0].ID)
	// startingQty defaults to the initial quantity
	require.Equal(t, 12, items[0].StartingQty)

	items, err = svc.AddStockItem(ctx, StockItem{Name: "Caddis", Category: "dry", Qty: 6, StartingQty: 24})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, int64(2), items[1].ID)
	require.Equal(t, 24, items[1].StartingQty)
}

func TestAddStockItem_IDAfterDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddStockItem(ctx, StockItem{Name: "Adams", Category: "dry"})
	require.NoError(t, err)
	_, err = svc.AddStockItem(ctx, StockItem{Name: "Caddis", Category: "dry"})
	require.NoError(t, err)
	_, err = svc.DeleteStockItem(ctx, 2)
	require.NoError(t, err)

	// ids keep counting from the highest seen, not from the length
	items, err := svc.AddStockItem(ctx, StockItem{Name: "Hopper", Category: "terrestrial"})
	require.NoError(t, err)
	require.Equal(t, int64(2), items[1].ID)
}

func TestUpdateStockItem_PatchSemantics(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddStockItem(ctx, StockItem{Name: "Adams", Category: "dry", Size: "14", Qty: 12, Price: 2.50})
	require.NoError(t, err)

	qty := 0
	price := 1.75
	items, err := svc.UpdateStockItem(ctx, 1, StockItemPatch{Qty: &qty, Price: &price})
	require.NoError(t, err)
	require.Len(t, items, 1)
	// set-but-zero fields overwrite, absent fields keep stored values
	require.Equal(t, 0, items[0].Qty)
	require.Equal(t, 1.75, items[0].Price)
	require.Equal(t, "Adams", items[0].Name)
	require.Equal(t, "14", items[0].Size)
}

func TestUpdateStockItem_Missing(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	name := "X"
	_, err := svc.UpdateStockItem(context.Background(), 99, StockItemPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStockItem(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddStockItem(ctx, StockItem{Name: "Adams", Category: "dry"})
	require.NoError(t, err)
	_, err = svc.AddStockItem(ctx, StockItem{Name: "Caddis", Category: "dry"})
	require.NoError(t, err)

	items, err := svc.DeleteStockItem(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Caddis", items[0].Name)

	_, err = svc.DeleteStockItem(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
}
