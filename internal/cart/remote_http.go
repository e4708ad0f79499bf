package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agrihub/internal/domain"
)

// HTTPRemote implements RemoteStore against the marketplace cart API. The
// bearer token identifies the user server-side, so the userID arguments only
// satisfy the interface.
type HTTPRemote struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPRemote points a remote store at an API base URL, e.g.
// "https://api.agrihub.test". The token must be a valid access token.
func NewHTTPRemote(baseURL, token string) *HTTPRemote {
	return &HTTPRemote{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type cartPayload struct {
	Items []domain.CartItem `json:"items"`
}

func (r *HTTPRemote) ListByUser(ctx context.Context, _ string) ([]domain.CartItem, error) {
	var out cartPayload
	if err := r.do(ctx, http.MethodGet, "/api/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type addItemPayload struct {
	ItemID string            `json:"itemId"`
	Items  []domain.CartItem `json:"items"`
}

func (r *HTTPRemote) Insert(ctx context.Context, item domain.CartItem) (string, error) {
	body := map[string]any{
		"productId": item.ProductID,
		"quantity":  item.Quantity,
		"snapshot":  item.Snapshot,
	}
	var out addItemPayload
	if err := r.do(ctx, http.MethodPost, "/api/cart/items", body, &out); err != nil {
		return "", err
	}
	if out.ItemID != "" {
		return out.ItemID, nil
	}
	// Older servers return only the full cart; match the row by product or,
	// for ad hoc lines, by snapshot. Never guess by position, a concurrent
	// session may have appended rows of its own.
	for _, it := range out.Items {
		if item.ProductID != nil {
			if it.ProductID != nil && *it.ProductID == *item.ProductID {
				return it.ID, nil
			}
			continue
		}
		if it.ProductID == nil && it.Snapshot == item.Snapshot {
			return it.ID, nil
		}
	}
	return "", fmt.Errorf("insert cart item: row missing from response")
}

func (r *HTTPRemote) UpdateQuantity(ctx context.Context, _, id string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return r.do(ctx, http.MethodPatch, "/api/cart/items/"+url.PathEscape(id), body, nil)
}

func (r *HTTPRemote) Delete(ctx context.Context, _, id string) error {
	return r.do(ctx, http.MethodDelete, "/api/cart/items/"+url.PathEscape(id), nil, nil)
}

func (r *HTTPRemote) DeleteAllByUser(ctx context.Context, _ string) error {
	return r.do(ctx, http.MethodDelete, "/api/cart", nil, nil)
}

func (r *HTTPRemote) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
