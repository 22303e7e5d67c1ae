package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Variables read from the process environment or the .env overlay.
const (
	EnvVersion     = "DOTBUILD_VERSION"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvMetricsFile = "DOTBUILD_METRICS_FILE"
)

// environment resolves variables from the process first and the .env file second.
type environment struct {
	lookup func(string) (string, bool)
	dotenv map[string]string
}

func (l *Loader) readEnvironment(path string) (*environment, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		values = map[string]string{}
	} else if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileReadFailed.Error()), "path", path)
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &environment{lookup: lookup, dotenv: values}, nil
}

// Get returns the value of key, or "" when unset.
func (e *environment) Get(key string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return e.dotenv[key]
}
