package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"testing"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/bootstrap"
	"github.com/ajurkovic/game-scheduler/internal/broker"
	"github.com/ajurkovic/game-scheduler/internal/config"
	"github.com/ajurkovic/game-scheduler/internal/server"
	"github.com/ajurkovic/game-scheduler/internal/tests"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type IntegrationTestFixture struct {
	client  *http.Client
	baseURL string
	db      *sql.DB
}

var fixture = IntegrationTestFixture{}

func TestMain(m *testing.M) {
	rootPath := "../../"

	if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
		log.Fatal(err)
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conf.Logger = zap.NewNop()

	pgPort := nat.Port("5432")

	f, err := tests.NewLocalTestFixture(
		path.Join(rootPath, "docker-compose.yml"),
		tests.ServiceWait{
			Service: "gs-postgres",
			Port:    5432,
			Strategy: wait.ForSQL(pgPort, "postgres", func(nat.Port) string {
				return conf.DatabaseURL
			}),
		},
		tests.ServiceWait{
			Service:  "gs-rabbitmq",
			Port:     5672,
			Strategy: wait.ForListeningPort(nat.Port("5672")),
		},
		tests.ServiceWait{
			Service:  "gs-redis",
			Port:     6379,
			Strategy: wait.ForListeningPort(nat.Port("6379")),
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

	if err := initInfrastructure(conf); err != nil {
		log.Fatal(err)
	}

	srv, err := server.NewHTTPServer(conf)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal(err)
		}
	}()

	_ = m.Run()

	if err := srv.Stop(); err != nil {
		log.Fatal(err)
	}
}

// initInfrastructure runs the same startup sequence the init process
// runs in a deployment.
func initInfrastructure(conf config.Config) error {
	ctx := context.Background()

	db, err := sql.Open("postgres", conf.DatabaseURL)
	if err != nil {
		return err
	}

	brokerClient, err := broker.NewClient(conf.AmqpURL, conf.Logger)
	if err != nil {
		return err
	}
	defer brokerClient.Close()

	orchestrator := bootstrap.NewOrchestrator(
		conf.Logger,
		bootstrap.WaitForDatabase(db, 2*time.Minute),
		bootstrap.ApplyMigrations(db, nil),
		bootstrap.VerifySchema(db),
		bootstrap.ProvisionTopology(brokerClient),
	)

	if err := orchestrator.Run(ctx); err != nil {
		return err
	}

	fixture.client = &http.Client{}
	fixture.db = db

	u := url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", "localhost", conf.Port),
	}
	fixture.baseURL = u.String()

	return nil
}
