package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{ShopURL: srv.URL, AccessToken: "tok", APIVersion: "2024-01", PageSize: 2}, zap.NewNop())
	require.NoError(t, err)
	return c, srv
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Valid", Config{ShopURL: "https://demo.myshopify.com", AccessToken: "x"}, false},
		{"Trailing Slash", Config{ShopURL: "https://demo.myshopify.com/"}, false},
		{"Empty", Config{}, true},
		{"No Scheme", Config{ShopURL: "demo.myshopify.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://demo.myshopify.com/admin/api/2024-01", c.baseURL)
			assert.Equal(t, maxPageSize, c.pageSize)
		})
	}
}

func TestConfig_IsConfigured(t *testing.T) {
	assert.True(t, Config{ShopURL: "https://x", AccessToken: "t"}.IsConfigured())
	assert.False(t, Config{ShopURL: "https://x"}.IsConfigured())
}

func TestClient_ListProducts_Paginates(t *testing.T) {
	var srvURL string
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get(TokenHeader))
		assert.Equal(t, "/admin/api/2024-01/products.json", r.URL.Path)

		if r.URL.Query().Get("page_info") == "" {
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-01/products.json?limit=2&page_info=abc>; rel="next"`, srvURL))
			fmt.Fprint(w, `{"products":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`)
			return
		}
		assert.Equal(t, "abc", r.URL.Query().Get("page_info"))
		w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-01/products.json?page_info=zzz>; rel="previous"`, srvURL))
		fmt.Fprint(w, `{"products":[{"id":3,"title":"C"}]}`)
	})
	srvURL = srv.URL

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, int64(3), products[2].ID)
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("Non 2xx", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"errors":{"title":["can't be blank"]}}`)
		})

		_, err := c.CreateProduct(context.Background(), models.OutboundProduct{})
		require.Error(t, err)
		assert.True(t, reconcile.IsTransport(err))

		var te *reconcile.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.MethodPost, te.Method)
		assert.Equal(t, "/products.json", te.Path)
		assert.Equal(t, http.StatusUnprocessableEntity, te.StatusCode)
		assert.Contains(t, te.Body, "can't be blank")
	})

	t.Run("Network", func(t *testing.T) {
		c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		_, err := c.ListProducts(context.Background())
		require.Error(t, err)
		assert.True(t, reconcile.IsTransport(err))
	})

	t.Run("Bad JSON", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"products":`)
		})
		_, err := c.ListProducts(context.Background())
		assert.True(t, reconcile.IsTransport(err))
	})
}

func TestClient_CreateAndReplace(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		fmt.Fprint(w, `{"product":{"id":77,"title":"Mug","variants":[{"id":770,"price":"5.00"}]}}`)
	})

	created, err := c.CreateProduct(context.Background(), models.OutboundProduct{
		Title:    "Mug",
		Variants: []models.OutboundVariant{{Price: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/admin/api/2024-01/products.json", gotPath)
	assert.Equal(t, "Mug", gotBody["product"]["title"])
	_, hasID := gotBody["product"]["id"]
	assert.False(t, hasID)
	assert.Equal(t, int64(770), created.Variants[0].ID)

	_, err = c.ReplaceProduct(context.Background(), 77, models.OutboundProduct{Title: "Mug"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/api/2024-01/products/77.json", gotPath)
	assert.Equal(t, float64(77), gotBody["product"]["id"])
}

func TestClient_UpdateInventory(t *testing.T) {
	var body string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/api/2024-01/products/10.json", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		fmt.Fprint(w, `{"product":{"id":10}}`)
	})

	err := c.UpdateInventory(context.Background(), models.InventoryUpdate{
		ProductID: 10,
		Variants:  []models.InventoryLevel{{ID: 11, InventoryQuantity: 4, InventoryManagement: models.InventoryManagement}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"product":{"id":10,"variants":[{"id":11,"inventory_quantity":4,"inventory_management":"shopify"}]}}`, body)
}

func TestClient_Images(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-01/products/5/images.json", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"images":[{"id":1,"src":"https://cdn.example.com/a.png?v=2"}]}`)
		case http.MethodPost:
			raw, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"image":{"attachment":"aGk=","filename":"b.png"}}`, string(raw))
			fmt.Fprint(w, `{"image":{"id":2,"src":"https://cdn.example.com/b.png"}}`)
		}
	})

	images, err := c.ListProductImages(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, images, 1)

	img, err := c.AddProductImage(context.Background(), 5, models.ImagePayload{Attachment: "aGk=", Filename: "b.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), img.ID)
}

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"Empty", "", ""},
		{"Next Only", `<https://x/products.json?page_info=a>; rel="next"`, "https://x/products.json?page_info=a"},
		{"Previous And Next", `<https://x/p?page_info=a>; rel="previous", <https://x/p?page_info=b>; rel="next"`, "https://x/p?page_info=b"},
		{"Previous Only", `<https://x/p?page_info=a>; rel="previous"`, ""},
		{"Malformed", `https://x/p; rel="next"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPageURL(tt.link))
		})
	}
}

func TestProber_IsImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.png":
			w.Header().Set("Content-Type", "image/png")
		case "/b.jpg":
			w.Header().Set("Content-Type", "image/jpeg; charset=binary")
		case "/page":
			w.Header().Set("Content-Type", "text/html")
		case "/webp":
			w.Header().Set("Content-Type", "image/webp")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewProber(2*time.Second, nil)
	ctx := context.Background()
	assert.True(t, p.IsImage(ctx, srv.URL+"/a.png"))
	assert.True(t, p.IsImage(ctx, srv.URL+"/b.jpg"))
	assert.False(t, p.IsImage(ctx, srv.URL+"/page"))
	assert.False(t, p.IsImage(ctx, srv.URL+"/webp"))
	assert.False(t, p.IsImage(ctx, srv.URL+"/missing"))
	assert.False(t, p.IsImage(ctx, "http://127.0.0.1:1/unreachable.png"))
}
