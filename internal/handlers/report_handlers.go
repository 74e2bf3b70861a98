package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/internal/database"
	"github.com/seta-app/seta-api/internal/reports"
	"github.com/seta-app/seta-api/internal/transfer"
	"github.com/seta-app/seta-api/models"
)

// CustomReportHandler собирает произвольный отчет и отдает его файлом
func CustomReportHandler(st transfer.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}

		var spec models.ReportSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный формат запроса отчета"})
			return
		}

		artifact, err := reports.Generate(c.Request.Context(), st, userID, spec)
		if err != nil {
			respondTransferError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
		c.Data(http.StatusOK, artifact.MIME, artifact.Data)
	}
}

// GeneralSummaryHandler отдает сводку по финансам пользователя
func GeneralSummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}

		if _, err := database.GetUserByID(pool, userID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "пользователь не найден"})
			return
		}

		summary, err := database.GetGeneralSummary(pool, userID)
		if err != nil {
			log.Printf("ошибка сборки сводки: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось собрать сводку"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
