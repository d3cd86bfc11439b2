package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// ListWalletsHandler returns the user's wallets.
func ListWalletsHandler(svc *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		wallets, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wallets)
	}
}

// GetWalletHandler returns one wallet.
func GetWalletHandler(svc *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		wallet, err := svc.Get(c.Request.Context(), userID, walletID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wallet)
	}
}

// CreateWalletHandler creates a wallet in a base currency.
func CreateWalletHandler(svc *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var in service.WalletInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		wallet, err := svc.Create(c.Request.Context(), userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, wallet)
	}
}

// UpdateWalletHandler renames a wallet or changes its base currency.
func UpdateWalletHandler(svc *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.WalletInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		wallet, err := svc.Update(c.Request.Context(), userID, walletID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wallet)
	}
}

// DeleteWalletHandler soft-deletes a wallet.
func DeleteWalletHandler(svc *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), userID, walletID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
