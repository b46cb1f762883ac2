package shop

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository used for unit tests and for
// running without a database.
type MemoryRepo struct {
	mu        sync.RWMutex
	favorites map[string][]Favorite
	lists     map[string][]ListItem
	orders    map[string][]Order
	catalog   []FlyPattern
	inventory []StockItem
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		favorites: make(map[string][]Favorite),
		lists:     make(map[string][]ListItem),
		orders:    make(map[string][]Order),
	}
}

func (m *MemoryRepo) Favorites(_ context.Context, sub string) ([]Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Favorite(nil), m.favorites[sub]...), nil
}

func (m *MemoryRepo) SaveFavorites(_ context.Context, sub string, items []Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites[sub] = append([]Favorite(nil), items...)
	return nil
}

func (m *MemoryRepo) ShoppingList(_ context.Context, sub string) ([]ListItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ListItem(nil), m.lists[sub]...), nil
}

func (m *MemoryRepo) SaveShoppingList(_ context.Context, sub string, items []ListItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[sub] = append([]ListItem(nil), items...)
	return nil
}

func (m *MemoryRepo) Orders(_ context.Context, sub string) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Order(nil), m.orders[sub]...), nil
}

func (m *MemoryRepo) SaveOrders(_ context.Context, sub string, orders []Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[sub] = append([]Order(nil), orders...)
	return nil
}

func (m *MemoryRepo) Catalog(context.Context) ([]FlyPattern, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]FlyPattern(nil), m.catalog...), nil
}

func (m *MemoryRepo) SaveCatalog(_ context.Context, items []FlyPattern) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = append([]FlyPattern(nil), items...)
	return nil
}

func (m *MemoryRepo) Inventory(context.Context) ([]StockItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]StockItem(nil), m.inventory...), nil
}

func (m *MemoryRepo) SaveInventory(_ context.Context, items []StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventory = append([]StockItem(nil), items...)
	return nil
}
