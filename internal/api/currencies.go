package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// ListCurrenciesHandler returns the supported currency catalog.
func ListCurrenciesHandler(svc *service.CurrencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		currencies, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, currencies)
	}
}

// RefreshCurrenciesHandler re-imports the catalog from the rate provider.
func RefreshCurrenciesHandler(svc *service.CurrencyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.Refresh(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"refreshed": count})
	}
}
