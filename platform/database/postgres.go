package database

import (
	"os"

	"github.com/go-pg/pg/v10"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

// PostgreSQLConnection opens a go-pg connection from the environment.
// DATABASE_URL wins when set; otherwise the individual DB_* variables apply.
func PostgreSQLConnection() *pg.DB {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		opts, err := pg.ParseURL(url)
		if err != nil {
			log.WithError(err).Fatal("invalid DATABASE_URL")
		}
		return pg.Connect(opts)
	}
	return pg.Connect(&pg.Options{
		User:     os.Getenv("DB_USER"),
		Addr:     os.Getenv("DB_ADDR"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
	})
}
