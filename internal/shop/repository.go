package shop

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a named pattern or item is absent.
	ErrNotFound = errors.New("fly pattern not found")
	// ErrEmptyList is returned when an order is placed with nothing in
	// the shopping list.
	ErrEmptyList = errors.New("shopping list is empty")
)

// Repository persists per-user lists and the shared catalog. Each list
// is read and written whole, mirroring the strongly consistent
// JSON-blob stores this data originally lived in.
type Repository interface {
	Favorites(ctx context.Context, sub string) ([]Favorite, error)
	SaveFavorites(ctx context.Context, sub string, items []Favorite) error

	ShoppingList(ctx context.Context, sub string) ([]ListItem, error)
	SaveShoppingList(ctx context.Context, sub string, items []ListItem) error

	Orders(ctx context.Context, sub string) ([]Order, error)
	SaveOrders(ctx context.Context, sub string, orders []Order) error

	Catalog(ctx context.Context) ([]FlyPattern, error)
	SaveCatalog(ctx context.Context, items []FlyPattern) error

	Inventory(ctx context.Context) ([]StockItem, error)
	SaveInventory(ctx context.Context, items []StockItem) error
}
