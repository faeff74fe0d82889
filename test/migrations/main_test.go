package main

import (
	"database/sql"
	"log"
	"path"
	"testing"

	"github.com/ajurkovic/game-scheduler/internal/config"
	"github.com/ajurkovic/game-scheduler/internal/tests"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go/wait"
)

var db *sql.DB

func TestMain(m *testing.M) {
	rootPath := "../../"

	if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
		log.Fatal(err)
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	f, err := tests.NewLocalTestFixture(
		path.Join(rootPath, "docker-compose.yml"),
		tests.ServiceWait{
			Service: "gs-postgres",
			Port:    5432,
			Strategy: wait.ForSQL(nat.Port("5432"), "postgres", func(nat.Port) string {
				return conf.DatabaseURL
			}),
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := f.Start(); err != nil {
		log.Fatal(err)
	}

	defer func() {
		if err := f.Stop(); err != nil {
			log.Fatal(err)
		}
	}()

	db, err = sql.Open("postgres", conf.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	_ = m.Run()
}
