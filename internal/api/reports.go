package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// DailyReportHandler totals one day's operations.
func DailyReportHandler(svc *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		report, err := svc.Daily(c.Request.Context(), userID, c.Query("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// PeriodReportHandler totals operations over an inclusive date range.
func PeriodReportHandler(svc *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		report, err := svc.Period(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
