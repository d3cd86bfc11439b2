package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// ListTypesHandler returns the user's operation types.
func ListTypesHandler(svc *service.OperationTypeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		types, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, types)
	}
}

// GetTypeHandler returns one operation type.
func GetTypeHandler(svc *service.OperationTypeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		typeID, ok := pathID(c, "id")
		if !ok {
			return
		}
		t, err := svc.Get(c.Request.Context(), userID, typeID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// CreateTypeHandler creates an operation type.
func CreateTypeHandler(svc *service.OperationTypeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var in service.OperationTypeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		t, err := svc.Create(c.Request.Context(), userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// UpdateTypeHandler renames or rekinds an operation type.
func UpdateTypeHandler(svc *service.OperationTypeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		typeID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.OperationTypeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		t, err := svc.Update(c.Request.Context(), userID, typeID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// DeleteTypeHandler soft-deletes a type unless operations still reference it.
func DeleteTypeHandler(svc *service.OperationTypeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		typeID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), userID, typeID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
