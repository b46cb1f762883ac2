package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nesba5git/onpointflies/internal/shop"
)

func inventoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := shop.NewService(shop.NewMemoryRepo())
	h := NewInventoryHandler(svc)

	g := gin.New()
	g.GET("/api/inventory", h.List)
	authed := g.Group("/api", asPrincipal("s1"))
	authed.POST("/inventory", h.Add)
	authed.PUT("/inventory", h.Update)
	authed.DELETE("/inventory", h.Delete)
	return g
}

func TestInventory_EmptyList(t *testing.T) {
	g := inventoryRouter(t)

	w := do(g, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", w.Body.String(), "empty inventory must be a JSON array, not null")
}

func TestInventory_AddAndList(t *testing.T) {
	g := inventoryRouter(t)

	w := do(g, http.MethodPost, "/api/inventory", `{"name":"Adams","category":"dry","size":"14","qty":12,"price":2.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Inventory item added")

	w = do(g, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []shop.StockItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, int64(1), items[0].ID)
	require.Equal(t, "Adams", items[0].Name)
	require.Equal(t, 12, items[0].StartingQty)
}

func TestInventory_AddValidation(t *testing.T) {
	g := inventoryRouter(t)

	for _, body := range []string{`{}`, `{"name":"Adams"}`, `{"category":"dry"}`} {
		w := do(g, http.MethodPost, "/api/inventory", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		require.Contains(t, w.Body.String(), "Name and category are required")
	}
}

func TestInventory_Update(t *testing.T) {
	g := inventoryRouter(t)

	w := do(g, http.MethodPost, "/api/inventory", `{"name":"Adams","category":"dry","qty":12}`)
	require.Equal(t, http.StatusOK, w.Code)

	// qty 0 is a real update, omitted fields keep stored values
	w = do(g, http.MethodPut, "/api/inventory", `{"id":1,"qty":0,"sold":12}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Inventory item updated")

	var resp struct {
		Inventory []shop.StockItem `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Inventory, 1)
	require.Equal(t, 0, resp.Inventory[0].Qty)
	require.Equal(t, 12, resp.Inventory[0].Sold)
	require.Equal(t, "Adams", resp.Inventory[0].Name)
}

func TestInventory_UpdateRequiresID(t *testing.T) {
	g := inventoryRouter(t)

	w := do(g, http.MethodPut, "/api/inventory", `{"qty":3}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Item id is required to update")
}

func TestInventory_UpdateMissing(t *testing.T) {
	g := inventoryRouter(t)

	w := do(g, http.MethodPut, "/api/inventory", `{"id":99,"qty":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Inventory item not found")
}

func TestInventory_Delete(t *testing.T) {
	g := inventoryRouter(t)

	w := do(g, http.MethodPost, "/api/inventory", `{"name":"Adams","category":"dry"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodDelete, "/api/inventory", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Item id is required")

	w = do(g, http.MethodDelete, "/api/inventory?id=99", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodDelete, "/api/inventory?id=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Inventory item deleted")

	w = do(g, http.MethodGet, "/api/inventory", "")
	require.Equal(t, "[]", w.Body.String())
}
