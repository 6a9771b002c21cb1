package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantry-scan/pantryscan/models"
	"github.com/pantry-scan/pantryscan/store"
)

// GetProduct returns a handler for GET /api/v1/products/:id.
func GetProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product := st.ProductByID(c.Param("id"))
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeNotFound,
					Message: "product not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.ProductResponse{
			Product:     product,
			Cached:      true,
			LastUpdated: product.ScrapedAt,
		})
	}
}
