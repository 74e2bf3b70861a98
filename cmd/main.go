package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/seta-app/seta-api/internal/database"
	"github.com/seta-app/seta-api/internal/handlers"
	"github.com/seta-app/seta-api/internal/routes"
	"github.com/seta-app/seta-api/internal/transfer"
	"github.com/seta-app/seta-api/utils"
)

const version = "1.0"

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("файл .env не найден, используются переменные окружения: %v", err)
	}

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("Ошибка миграций: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "1" {
		utils.SeedDemoData(pool)
	}

	store := database.NewRecordStore(pool)

	r := gin.Default()
	r.Use(CORSMiddleware())

	r.GET("/export/all/:id", handlers.ExportAllHandler(store))
	r.POST("/import/all/:id", handlers.ImportAllHandler(store))
	r.POST("/expenses/import/:id", handlers.ImportCSVHandler(store, transfer.KindExpenses))
	r.POST("/income/import/:id", handlers.ImportCSVHandler(store, transfer.KindIncome))
	r.POST("/reports/:id/custom", handlers.CustomReportHandler(store))
	r.GET("/reports/:id/general_summary", handlers.GeneralSummaryHandler(pool))

	// остальные CRUD-маршруты обслуживает gorilla-роутер
	crud := routes.SetupRouter(pool)
	r.NoRoute(gin.WrapH(crud))

	c := cron.New()
	_, err = c.AddFunc("@daily", func() {
		if err := database.PostDueRecurringExpenses(pool); err != nil {
			log.Printf("Ошибка проведения регулярных расходов: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи: %v", err)
	}
	c.Start()
	defer c.Stop()

	opsAddr := os.Getenv("OPS_ADDR")
	if opsAddr == "" {
		opsAddr = ":8081"
	}
	go func() {
		if err := http.ListenAndServe(opsAddr, routes.OpsRouter(pool, version)); err != nil {
			log.Printf("Ошибка служебного сервера: %v", err)
		}
	}()

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Сервер запущен на %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
