package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// TokenHeader carries the access token.
const TokenHeader = "X-Shopify-Access-Token"

const maxPageSize = 250

// Client talks to the platform's REST Admin API.
type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	pageSize int
	logger   *zap.Logger
}

// NewClient creates a Client. It fails when the shop URL is missing or malformed.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ShopURL == "" {
		return nil, errors.New("platform shop url is not configured")
	}
	u, err := url.Parse(strings.TrimRight(cfg.ShopURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid platform shop url %q", cfg.ShopURL)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	version := cfg.APIVersion
	if version == "" {
		version = "2024-01"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL:  u.String() + "/admin/api/" + version,
		token:    cfg.AccessToken,
		pageSize: pageSize,
		logger:   logger.Named("remote"),
	}, nil
}

type productEnvelope struct {
	Product any `json:"product"`
}

type productsPage struct {
	Products []models.RemoteProduct `json:"products"`
}

type productResponse struct {
	Product models.RemoteProduct `json:"product"`
}

type imagesResponse struct {
	Images []models.RemoteImage `json:"images"`
}

type imageEnvelope struct {
	Image any `json:"image"`
}

type imageResponse struct {
	Image models.RemoteImage `json:"image"`
}

// ListProducts returns every product, following cursor pagination.
func (c *Client) ListProducts(ctx context.Context) ([]models.RemoteProduct, error) {
	var all []models.RemoteProduct
	next := c.baseURL + "/products.json?limit=" + strconv.Itoa(c.pageSize)
	for next != "" {
		var page productsPage
		header, err := c.do(ctx, http.MethodGet, next, nil, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Products...)
		next = nextPageURL(header.Get("Link"))
	}
	c.logger.Debug("Listed remote products", zap.Int("count", len(all)))
	return all, nil
}

// CreateProduct creates a product and returns it with its assigned ids.
func (c *Client) CreateProduct(ctx context.Context, p models.OutboundProduct) (*models.RemoteProduct, error) {
	var resp productResponse
	if _, err := c.do(ctx, http.MethodPost, c.baseURL+"/products.json", productEnvelope{Product: p}, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// ReplaceProduct overwrites product id with p.
func (c *Client) ReplaceProduct(ctx context.Context, id int64, p models.OutboundProduct) (*models.RemoteProduct, error) {
	p.ID = id
	var resp productResponse
	if _, err := c.do(ctx, http.MethodPut, c.productURL(id), productEnvelope{Product: p}, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// UpdateInventory sends a quantity-only partial product update.
func (c *Client) UpdateInventory(ctx context.Context, u models.InventoryUpdate) error {
	_, err := c.do(ctx, http.MethodPut, c.productURL(u.ProductID), productEnvelope{Product: u}, nil)
	return err
}

// ListProductImages lists the images attached to a product.
func (c *Client) ListProductImages(ctx context.Context, productID int64) ([]models.RemoteImage, error) {
	var resp imagesResponse
	if _, err := c.do(ctx, http.MethodGet, c.imagesURL(productID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// AddProductImage attaches an image to a product.
func (c *Client) AddProductImage(ctx context.Context, productID int64, img models.ImagePayload) (*models.RemoteImage, error) {
	var resp imageResponse
	if _, err := c.do(ctx, http.MethodPost, c.imagesURL(productID), imageEnvelope{Image: img}, &resp); err != nil {
		return nil, err
	}
	return &resp.Image, nil
}

func (c *Client) productURL(id int64) string {
	return c.baseURL + "/products/" + strconv.FormatInt(id, 10) + ".json"
}

func (c *Client) imagesURL(id int64) string {
	return c.baseURL + "/products/" + strconv.FormatInt(id, 10) + "/images.json"
}

// do performs one JSON call. Network failures and non-2xx responses become *reconcile.TransportError.
func (c *Client) do(ctx context.Context, method, rawURL string, body, target any) (http.Header, error) {
	path := strings.TrimPrefix(rawURL, c.baseURL)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &reconcile.TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set(TokenHeader, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &reconcile.TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &reconcile.TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("Remote call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &reconcile.TransportError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(payload)),
		}
	}

	if target != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, target); err != nil {
			return nil, &reconcile.TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return resp.Header, nil
}

// nextPageURL extracts the rel="next" target of a Link header, or "".
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			if strings.ReplaceAll(strings.TrimSpace(param), " ", "") == `rel="next"` {
				return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
			}
		}
	}
	return ""
}
