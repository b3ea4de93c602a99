package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

func (c *Client) Register(ctx context.Context, in Registration) (*Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterAdmin(ctx context.Context, in Registration) (*Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/users/register-admin", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login does not treat a 401 as an expired session: the credentials were wrong.
func (c *Client) Login(ctx context.Context, in Credentials) (*Session, error) {
	var out Session
	err := c.do(ctx, http.MethodPost, "/users/login", nil, in, &out)
	if errors.Is(err, ErrSessionExpired) {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.LowStock {
		query.Set("lowStock", "true")
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.Descending {
		query.Set("order", "desc")
	}

	var out []Product
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductPatch) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id.String(), nil, nil, nil)
}

func (c *Client) StockHistory(ctx context.Context) ([]StockEntry, error) {
	var out []StockEntry
	if err := c.do(ctx, http.MethodGet, "/stock-history", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductStockHistory(ctx context.Context, productID uuid.UUID) ([]StockEntry, error) {
	var out []StockEntry
	if err := c.do(ctx, http.MethodGet, "/stock-history/"+productID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdjustStock(ctx context.Context, in StockAdjustment) (*StockEntry, error) {
	var out StockEntry
	if err := c.do(ctx, http.MethodPost, "/stock-history", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StockMovement(ctx context.Context, days int) ([]StockMovement, error) {
	var out struct {
		Period int             `json:"period"`
		Data   []StockMovement `json:"data"`
	}
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	if err := c.do(ctx, http.MethodGet, "/dashboard/stock-movement", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
