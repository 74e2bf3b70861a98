package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seta-app/seta-api/internal/transfer"
)

// userIDParam извлекает идентификатор пользователя из пути запроса
func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный ID пользователя"})
		return 0, false
	}
	return id, true
}

// respondTransferError переводит типизированные ошибки обмена данными
// в HTTP-статусы
func respondTransferError(c *gin.Context, err error) {
	var notFound *transfer.NotFoundError
	var validation *transfer.ValidationError
	var format *transfer.FormatError
	var unsupported *transfer.UnsupportedFormatError
	var tx *transfer.TransactionError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		body := gin.H{"error": err.Error()}
		if len(validation.Missing) > 0 {
			body["missing"] = validation.Missing
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &format):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &tx):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Printf("внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}

// ExportAllHandler отдает полный снимок данных пользователя файлом JSON
func ExportAllHandler(st transfer.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}

		snapshot, err := transfer.ExportAll(c.Request.Context(), st, userID)
		if err != nil {
			respondTransferError(c, err)
			return
		}

		filename := transfer.ExportFilename(userID, time.Now())
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.JSON(http.StatusOK, snapshot)
	}
}

// ImportAllHandler принимает снимок JSON и полностью заменяет им данные
// пользователя
func ImportAllHandler(st transfer.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}

		body, err := readUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
			return
		}

		outcome, err := transfer.ImportAll(c.Request.Context(), st, userID, body)
		if err != nil {
			var tx *transfer.TransactionError
			if errors.As(err, &tx) && outcome != nil {
				// откат: результат с нулевыми счетчиками все равно отдаем
				c.JSON(http.StatusInternalServerError, outcome)
				return
			}
			respondTransferError(c, err)
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

// ImportCSVHandler принимает CSV-файл с записями одного вида.
// Файл берется из multipart-поля file, иначе из тела запроса целиком.
func ImportCSVHandler(st transfer.Store, kind transfer.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}

		data, err := readUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
			return
		}

		outcome, err := transfer.ImportCSV(c.Request.Context(), st, userID, kind, data)
		if err != nil {
			var tx *transfer.TransactionError
			if errors.As(err, &tx) && outcome != nil {
				c.JSON(http.StatusInternalServerError, outcome)
				return
			}
			respondTransferError(c, err)
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

func readUpload(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("file")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(c.Request.Body)
}
