package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// ListOperationsHandler returns a page of the user's operations across all
// wallets.
func ListOperationsHandler(svc *service.OperationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		page := queryInt(c, "page", service.DefaultPage)
		pageSize := queryInt(c, "page_size", service.DefaultPageSize)
		result, err := svc.List(c.Request.Context(), userID, 0, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListWalletOperationsHandler returns a page of one wallet's operations.
func ListWalletOperationsHandler(svc *service.OperationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		page := queryInt(c, "page", service.DefaultPage)
		pageSize := queryInt(c, "page_size", service.DefaultPageSize)
		result, err := svc.List(c.Request.Context(), userID, walletID, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetOperationHandler returns one operation.
func GetOperationHandler(svc *service.OperationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		operationID, ok := pathID(c, "id")
		if !ok {
			return
		}
		op, err := svc.Get(c.Request.Context(), userID, operationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, op)
	}
}

// CreateOperationHandler records a new operation in a wallet.
func CreateOperationHandler(svc *service.OperationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.OperationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		op, err := svc.Create(c.Request.Context(), userID, walletID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, op)
	}
}

// UpdateOperationHandler modifies an existing operation.
func UpdateOperationHandler(svc *service.OperationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		operationID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.OperationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		op, err := svc.Update(c.Request.Context(), userID, operationID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, op)
	}
}

// DeleteOperationHandler soft-deletes an operation.
func DeleteOperationHandler(svc *service.OperationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		operationID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), userID, operationID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
