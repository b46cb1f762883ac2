package shop

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogKey = "all"

// MongoRepo implements Repository on MongoDB. Per-user lists live one
// document per subject; the catalog is a single shared document.
type MongoRepo struct {
	favorites *mongo.Collection
	lists     *mongo.Collection
	orders    *mongo.Collection
	catalog   *mongo.Collection
	inventory *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		favorites: db.Collection("favorites"),
		lists:     db.Collection("shopping_lists"),
		orders:    db.Collection("orders"),
		catalog:   db.Collection("catalog"),
		inventory: db.Collection("inventory"),
	}
}

type favoritesDoc struct {
	Auth0ID string     `bson:"auth0_id"`
	Items   []Favorite `bson:"items"`
}

type listDoc struct {
	Auth0ID string     `bson:"auth0_id"`
	Items   []ListItem `bson:"items"`
}

type ordersDoc struct {
	Auth0ID string  `bson:"auth0_id"`
	Orders  []Order `bson:"orders"`
}

type catalogDoc struct {
	Key   string       `bson:"key"`
	Items []FlyPattern `bson:"items"`
}

type inventoryDoc struct {
	Key   string      `bson:"key"`
	Items []StockItem `bson:"items"`
}

var upsert = options.Replace().SetUpsert(true)

func (r *MongoRepo) Favorites(ctx context.Context, sub string) ([]Favorite, error) {
	var doc favoritesDoc
	if err := r.favorites.FindOne(ctx, bson.M{"auth0_id": sub}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.Items, nil
}

func (r *MongoRepo) SaveFavorites(ctx context.Context, sub string, items []Favorite) error {
	_, err := r.favorites.ReplaceOne(ctx, bson.M{"auth0_id": sub}, favoritesDoc{Auth0ID: sub, Items: items}, upsert)
	return err
}

func (r *MongoRepo) ShoppingList(ctx context.Context, sub string) ([]ListItem, error) {
	var doc listDoc
	if err := r.lists.FindOne(ctx, bson.M{"auth0_id": sub}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.Items, nil
}

func (r *MongoRepo) SaveShoppingList(ctx context.Context, sub string, items []ListItem) error {
	_, err := r.lists.ReplaceOne(ctx, bson.M{"auth0_id": sub}, listDoc{Auth0ID: sub, Items: items}, upsert)
	return err
}

func (r *MongoRepo) Orders(ctx context.Context, sub string) ([]Order, error) {
	var doc ordersDoc
	if err := r.orders.FindOne(ctx, bson.M{"auth0_id": sub}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.Orders, nil
}

func (r *MongoRepo) SaveOrders(ctx context.Context, sub string, orders []Order) error {
	_, err := r.orders.ReplaceOne(ctx, bson.M{"auth0_id": sub}, ordersDoc{Auth0ID: sub, Orders: orders}, upsert)
	return err
}

func (r *MongoRepo) Catalog(ctx context.Context) ([]FlyPattern, error) {
	var doc catalogDoc
	if err := r.catalog.FindOne(ctx, bson.M{"key": catalogKey}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.Items, nil
}

func (r *MongoRepo) SaveCatalog(ctx context.Context, items []FlyPattern) error {
	_, err := r.catalog.ReplaceOne(ctx, bson.M{"key": catalogKey}, catalogDoc{Key: catalogKey, Items: items}, upsert)
	return err
}

func (r *MongoRepo) Inventory(ctx context.Context) ([]StockItem, error) {
	var doc inventoryDoc
	if err := r.inventory.FindOne(ctx, bson.M{"key": catalogKey}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.Items, nil
}

func (r *MongoRepo) SaveInventory(ctx context.Context, items []StockItem) error {
	_, err := r.inventory.ReplaceOne(ctx, bson.M{"key": catalogKey}, inventoryDoc{Key: catalogKey, Items: items}, upsert)
	return err
}
