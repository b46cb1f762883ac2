package shop

// FlyPattern is a fly-tying pattern as listed in the catalog.
type FlyPattern struct {
	Name        string `json:"name" bson:"name"`
	Type        string `json:"type" bson:"type"`
	BestFor     string `json:"bestFor" bson:"bestFor"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
	Recipe      string `json:"recipe,omitempty" bson:"recipe,omitempty"`
}

// Favorite is a fly pattern saved to a user's favorites.
type Favorite struct {
	FlyPattern `bson:",inline"`
	CreatedAt  string `json:"created_at" bson:"created_at"`
}

// ListItem is a shopping-list entry with quantity and unit price.
type ListItem struct {
	FlyPattern `bson:",inline"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	Price      float64 `json:"price" bson:"price"`
	CreatedAt  string  `json:"created_at" bson:"created_at"`
	UpdatedAt  string  `json:"updated_at" bson:"updated_at"`
}

// StockItem is a physical inventory entry: tied flies on hand, by size,
// with sales tracking. Distinct from the catalog, which describes
// patterns and recipes rather than stock.
type StockItem struct {
	ID          int64   `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Category    string  `json:"category" bson:"category"`
	Subcategory string  `json:"subcategory" bson:"subcategory"`
	Size        string  `json:"size" bson:"size"`
	Qty         int     `json:"qty" bson:"qty"`
	Price       float64 `json:"price" bson:"price"`
	Sold        int     `json:"sold" bson:"sold"`
	StartingQty int     `json:"startingQty" bson:"startingQty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
}

// StockItemPatch is a partial stock-item update. Nil fields keep their
// stored values; set-but-zero fields overwrite (qty can go to 0).
type StockItemPatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Size        *string  `json:"size"`
	Qty         *int     `json:"qty"`
	Price       *float64 `json:"price"`
	Sold        *int     `json:"sold"`
	StartingQty *int     `json:"startingQty"`
	Image       *string  `json:"image"`
}

// OrderItem is the snapshot of a list item at order time.
type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Type     string  `json:"type" bson:"type"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

// Order is a placed order. IDs are millisecond timestamps, which is
// unique enough per user.
type Order struct {
	ID          int64       `json:"id" bson:"id"`
	Status      string      `json:"status" bson:"status"`
	TotalAmount float64     `json:"total_amount" bson:"total_amount"`
	TotalFlies  int         `json:"total_flies" bson:"total_flies"`
	Notes       string      `json:"notes,omitempty" bson:"notes,omitempty"`
	Items       []OrderItem `json:"items" bson:"items"`
	CreatedAt   string      `json:"created_at" bson:"created_at"`
	UpdatedAt   string      `json:"updated_at" bson:"updated_at"`
}
