package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	productrepo "agrihub/internal/repository/product"
	productsvc "agrihub/internal/service/product"
)

func listCategoriesHandler(categories CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": list})
	}
}

func getCategoryHandler(categories CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := categories.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func listProductsHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := productrepo.Filter{
			CategoryID: c.Query("category"),
			SellerID:   c.Query("seller"),
			Status:     c.Query("status"),
			Search:     c.Query("search"),
		}
		if v := c.Query("organic"); v != "" {
			organic := v == "true"
			f.Organic = &organic
		}
		f.Limit, _ = strconv.Atoi(c.Query("limit"))
		f.Offset, _ = strconv.Atoi(c.Query("offset"))

		list, err := products.List(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "count": len(list)})
	}
}

func getProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		p, err := products.Create(c.Request.Context(), currentProfile(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

type updateProductRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	PriceCents        *int64   `json:"priceCents"`
	Unit              *string  `json:"unit"`
	QuantityAvailable *int     `json:"quantityAvailable"`
	Images            []string `json:"images"`
	Location          *string  `json:"location"`
	IsOrganic         *bool    `json:"isOrganic"`
	Status            *string  `json:"status"`
	CategoryID        *string  `json:"categoryId"`
}

func updateProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		p, err := products.Update(c.Request.Context(), currentProfile(c).ID, c.Param("id"), productrepo.UpdateInput{
			Title:             req.Title,
			Description:       req.Description,
			PriceCents:        req.PriceCents,
			Unit:              req.Unit,
			QuantityAvailable: req.QuantityAvailable,
			Images:            req.Images,
			Location:          req.Location,
			IsOrganic:         req.IsOrganic,
			Status:            req.Status,
			CategoryID:        req.CategoryID,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Delete(c.Request.Context(), currentProfile(c), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
