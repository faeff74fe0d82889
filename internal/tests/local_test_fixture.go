package tests

import (
	"os"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ServiceWait pairs a compose service with the strategy that decides
// when it is ready.
type ServiceWait struct {
	Service  string
	Port     int
	Strategy wait.Strategy
}

type LocalTestFixture struct {
	dockerComposePath string
	compose           testcontainers.DockerCompose
}

func NewLocalTestFixture(dockerComposePath string, waits ...ServiceWait) (LocalTestFixture, error) {
	compose := testcontainers.NewLocalDockerCompose(
		[]string{dockerComposePath},
		uuid.New().String(),
	)

	withCommand := compose.WithCommand([]string{"up", "--build", "-d"})
	for _, w := range waits {
		withCommand = withCommand.WithExposedService(w.Service, w.Port, w.Strategy)
	}

	return LocalTestFixture{
		dockerComposePath: dockerComposePath,
		compose:           withCommand,
	}, nil
}

func (f *LocalTestFixture) Start() error {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	execErr := f.compose.Invoke()
	return execErr.Error
}

func (f *LocalTestFixture) Stop() error {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	execErr := f.compose.Down()
	return execErr.Error
}
