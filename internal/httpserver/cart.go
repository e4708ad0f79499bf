package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agrihub/internal/domain"
	cartsvc "agrihub/internal/service/cart"
)

type cartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalCents int64             `json:"totalCents"`
}

func toCartResponse(items []domain.CartItem) cartResponse {
	if items == nil {
		items = []domain.CartItem{}
	}
	var count int
	var total int64
	for _, it := range items {
		count += it.Quantity
		total += it.TotalCents()
	}
	return cartResponse{Items: items, TotalItems: count, TotalCents: total}
}

func listCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := carts.List(c.Request.Context(), currentProfile(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

// addCartResponse is the cart plus the id of the row the add touched, so
// clients need not search the item list for it.
type addCartResponse struct {
	cartResponse
	ItemID string `json:"itemId"`
}

func addCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		id, items, err := carts.Add(c.Request.Context(), currentProfile(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, addCartResponse{toCartResponse(items), id})
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		userID := currentProfile(c).ID
		if err := carts.UpdateQuantity(c.Request.Context(), userID, c.Param("id"), req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		items, err := carts.List(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func removeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Remove(c.Request.Context(), currentProfile(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), currentProfile(c).ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
