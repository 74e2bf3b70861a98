package database

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/seta-app/seta-api/migrations"
)

// RunMigrations накатывает встроенные SQL-миграции до актуальной версии
func RunMigrations() error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("ошибка чтения миграций: %v", err)
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	url := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		port,
		os.Getenv("DB_NAME"))

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("ошибка инициализации миграций: %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("миграции: изменений нет")
			return nil
		}
		return fmt.Errorf("ошибка применения миграций: %v", err)
	}
	log.Println("миграции применены")
	return nil
}
