package shop

import (
	"context"
	"time"
)

// DefaultFlyPrice is the unit price applied when a list item comes in
// without one.
const DefaultFlyPrice = 2.50

// Service implements the list and catalog operations on top of a
// Repository. Lists are read-modify-write whole, matching the blob
// semantics of the stores.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// --- favorites ---

func (s *Service) Favorites(ctx context.Context, sub string) ([]Favorite, error) {
	return s.repo.Favorites(ctx, sub)
}

// AddFavorite appends the pattern unless one with the same name exists.
func (s *Service) AddFavorite(ctx context.Context, sub string, p FlyPattern) error {
	favs, err := s.repo.Favorites(ctx, sub)
	if err != nil {
		return err
	}
	for _, f := range favs {
		if f.Name == p.Name {
			return nil
		}
	}
	favs = append(favs, Favorite{FlyPattern: p, CreatedAt: now()})
	return s.repo.SaveFavorites(ctx, sub, favs)
}

func (s *Service) RemoveFavorite(ctx context.Context, sub, name string) error {
	favs, err := s.repo.Favorites(ctx, sub)
	if err != nil {
		return err
	}
	kept := favs[:0]
	for _, f := range favs {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	return s.repo.SaveFavorites(ctx, sub, kept)
}

// --- shopping list ---

func (s *Service) ShoppingList(ctx context.Context, sub string) ([]ListItem, error) {
	return s.repo.ShoppingList(ctx, sub)
}

// AddToList adds the pattern or bumps its quantity when already listed.
// Returns the resulting quantity.
func (s *Service) AddToList(ctx context.Context, sub string, p FlyPattern, price float64) (int, error) {
	items, err := s.repo.ShoppingList(ctx, sub)
	if err != nil {
		return 0, err
	}
	for i := range items {
		if items[i].Name == p.Name {
			items[i].Quantity++
			items[i].UpdatedAt = now()
			if err := s.repo.SaveShoppingList(ctx, sub, items); err != nil {
				return 0, err
			}
			return items[i].Quantity, nil
		}
	}
	if price <= 0 {
		price = DefaultFlyPrice
	}
	ts := now()
	items = append(items, ListItem{FlyPattern: p, Quantity: 1, Price: price, CreatedAt: ts, UpdatedAt: ts})
	if err := s.repo.SaveShoppingList(ctx, sub, items); err != nil {
		return 0, err
	}
	return 1, nil
}

// SetQuantity sets the quantity of a named list item. Unknown names are
// ignored, matching the original behavior.
func (s *Service) SetQuantity(ctx context.Context, sub, name string, quantity int) error {
	items, err := s.repo.ShoppingList(ctx, sub)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].Name == name {
			items[i].Quantity = quantity
			items[i].UpdatedAt = now()
			return s.repo.SaveShoppingList(ctx, sub, items)
		}
	}
	return nil
}

func (s *Service) RemoveFromList(ctx context.Context, sub, name string) error {
	items, err := s.repo.ShoppingList(ctx, sub)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.Name != name {
			kept = append(kept, it)
		}
	}
	return s.repo.SaveShoppingList(ctx, sub, kept)
}

func (s *Service) ClearList(ctx context.Context, sub string) error {
	return s.repo.SaveShoppingList(ctx, sub, nil)
}

// --- orders ---

func (s *Service) Orders(ctx context.Context, sub string) ([]Order, error) {
	return s.repo.Orders(ctx, sub)
}

// PlaceOrder snapshots the shopping list into a new order, prepends it
// to the user's order history and clears the list. An empty list yields
// ErrEmptyList.
func (s *Service) PlaceOrder(ctx context.Context, sub, notes string) (*Order, error) {
	items, err := s.repo.ShoppingList(ctx, sub)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyList
	}

	var totalAmount float64
	var totalFlies int
	orderItems := make([]OrderItem, 0, len(items))
	for _, it := range items {
		price := it.Price
		if price <= 0 {
			price = DefaultFlyPrice
		}
		totalAmount += price * float64(it.Quantity)
		totalFlies += it.Quantity
		orderItems = append(orderItems, OrderItem{Name: it.Name, Type: it.Type, Quantity: it.Quantity, Price: price})
	}

	ts := now()
	order := Order{
		ID:          time.Now().UnixMilli(),
		Status:      "pending",
		TotalAmount: totalAmount,
		TotalFlies:  totalFlies,
		Notes:       notes,
		Items:       orderItems,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	orders, err := s.repo.Orders(ctx, sub)
	if err != nil {
		return nil, err
	}
	orders = append([]Order{order}, orders...)
	if err := s.repo.SaveOrders(ctx, sub, orders); err != nil {
		return nil, err
	}
	if err := s.repo.SaveShoppingList(ctx, sub, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

// --- catalog ---

func (s *Service) Catalog(ctx context.Context) ([]FlyPattern, error) {
	return s.repo.Catalog(ctx)
}

func (s *Service) AddPattern(ctx context.Context, p FlyPattern) ([]FlyPattern, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	catalog = append(catalog, p)
	if err := s.repo.SaveCatalog(ctx, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// UpdatePattern replaces the pattern named originalName. Empty incoming
// fields keep their stored values.
func (s *Service) UpdatePattern(ctx context.Context, originalName string, p FlyPattern) ([]FlyPattern, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].Name == originalName {
			if p.Name != "" {
				catalog[i].Name = p.Name
			}
			if p.Type != "" {
				catalog[i].Type = p.Type
			}
			if p.BestFor != "" {
				catalog[i].BestFor = p.BestFor
			}
			if p.Description != "" {
				catalog[i].Description = p.Description
			}
			if p.Image != "" {
				catalog[i].Image = p.Image
			}
			if p.Recipe != "" {
				catalog[i].Recipe = p.Recipe
			}
			if err := s.repo.SaveCatalog(ctx, catalog); err != nil {
				return nil, err
			}
			return catalog, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) DeletePattern(ctx context.Context, name string) ([]FlyPattern, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].Name == name {
			catalog = append(catalog[:i], catalog[i+1:]...)
			if err := s.repo.SaveCatalog(ctx, catalog); err != nil {
				return nil, err
			}
			return catalog, nil
		}
	}
	return nil, ErrNotFound
}

// --- inventory ---

func (s *Service) Inventory(ctx context.Context) ([]StockItem, error) {
	return s.repo.Inventory(ctx)
}

// AddStockItem assigns the next id (max existing + 1) and appends the
// item. A zero startingQty defaults to the initial quantity.
func (s *Service) AddStockItem(ctx context.Context, item StockItem) ([]StockItem, error) {
	items, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	var maxID int64
	for _, it := range items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	item.ID = maxID + 1
	if item.StartingQty == 0 {
		item.StartingQty = item.Qty
	}
	items = append(items, item)
	if err := s.repo.SaveInventory(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStockItem applies the patch to the item with the given id. Only
// fields present in the patch overwrite stored values, so a set-but-zero
// field (qty 0, price 0) still takes effect.
func (s *Service) UpdateStockItem(ctx context.Context, id int64, patch StockItemPatch) ([]StockItem, error) {
	items, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			items[i].Name = *patch.Name
		}
		if patch.Category != nil {
			items[i].Category = *patch.Category
		}
		if patch.Subcategory != nil {
			items[i].Subcategory = *patch.Subcategory
		}
		if patch.Size != nil {
			items[i].Size = *patch.Size
		}
		if patch.Qty != nil {
			items[i].Qty = *patch.Qty
		}
		if patch.Price != nil {
			items[i].Price = *patch.Price
		}
		if patch.Sold != nil {
			items[i].Sold = *patch.Sold
		}
		if patch.StartingQty != nil {
			items[i].StartingQty = *patch.StartingQty
		}
		if patch.Image != nil {
			items[i].Image = *patch.Image
		}
		if err := s.repo.SaveInventory(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, ErrNotFound
}

func (s *Service) DeleteStockItem(ctx context.Context, id int64) ([]StockItem, error) {
	items, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := s.repo.SaveInventory(ctx, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, ErrNotFound
}
