package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/broker"
	"github.com/ajurkovic/game-scheduler/internal/migrations"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Step is a named, all-or-nothing phase of startup.
type Step struct {
	Name string
	Run  func(context.Context) error
}

// Orchestrator runs the startup sequence: wait for storage, apply
// pending migrations, verify the resulting schema, provision the
// messaging topology. The first failing step aborts startup - nothing
// is retried except readiness waiting inside WaitForDatabase.
type Orchestrator struct {
	steps  []Step
	logger *zap.Logger
}

func NewOrchestrator(logger *zap.Logger, steps ...Step) *Orchestrator {
	return &Orchestrator{steps: steps, logger: logger}
}

func (o *Orchestrator) Run(ctx context.Context) error {
	for _, step := range o.steps {
		o.logger.Info("running startup step", zap.String("step", step.Name))

		if err := step.Run(ctx); err != nil {
			return errors.Wrapf(err, "startup step %s failed", step.Name)
		}

		o.logger.Info("startup step completed", zap.String("step", step.Name))
	}

	return nil
}

func WaitForDatabase(db *sql.DB, timeout time.Duration) Step {
	return Step{
		Name: "wait for database",
		Run: func(ctx context.Context) error {
			policy := backoff.NewExponentialBackOff()
			policy.MaxInterval = 5 * time.Second
			policy.MaxElapsedTime = timeout

			ping := func() error {
				return db.PingContext(ctx)
			}

			return backoff.Retry(ping, backoff.WithContext(policy, ctx))
		},
	}
}

// ApplyMigrations runs the revision chain. With a redis client given,
// the step is serialized across replicas so only one process migrates
// at a time.
func ApplyMigrations(db *sql.DB, redisClient *redis.Client) Step {
	return Step{
		Name: "apply migrations",
		Run: func(ctx context.Context) error {
			chain, err := migrations.BuildChain(migrations.All())
			if err != nil {
				return err
			}

			runner := migrations.NewRunner(db, chain)

			if redisClient == nil {
				return runner.Upgrade(ctx)
			}

			lock, err := acquireMigrationLock(ctx, redisClient)
			if err != nil {
				return err
			}
			defer lock.release()

			return runner.Upgrade(ctx)
		},
	}
}

func VerifySchema(db *sql.DB) Step {
	return Step{
		Name: "verify schema",
		Run: func(ctx context.Context) error {
			return migrations.VerifySchema(ctx, db)
		},
	}
}

func ProvisionTopology(client *broker.Client) Step {
	return Step{
		Name: "provision messaging topology",
		Run: func(_ context.Context) error {
			return client.SetupTopology()
		},
	}
}
