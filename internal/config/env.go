package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

// EnvFiles are read in order; earlier files win and the process environment wins over both.
var EnvFiles = []string{".env", ".env.local"}

var (
	envMu sync.Mutex
	// envApplied holds the values this package set from env files, so a
	// reload can replace them while leaving variables set by the caller alone.
	envApplied = map[string]string{}
)

// loadEnvFiles applies the .env files that exist next to the configuration
// file. Keys removed from the files since the previous call are unset again.
func loadEnvFiles(dir string) error {
	values := map[string]string{}
	for _, name := range EnvFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		fileValues, err := godotenv.Read(p)
		if err != nil {
			return err
		}
		for k, v := range fileValues {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}

	envMu.Lock()
	defer envMu.Unlock()

	for k, prev := range envApplied {
		if _, ok := values[k]; ok {
			continue
		}
		if cur, set := os.LookupEnv(k); set && cur == prev {
			if err := os.Unsetenv(k); err != nil {
				return err
			}
		}
		delete(envApplied, k)
	}

	for k, v := range values {
		cur, set := os.LookupEnv(k)
		prev, ours := envApplied[k]
		if set && (!ours || cur != prev) {
			// Owned by the caller's environment.
			delete(envApplied, k)
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
		envApplied[k] = v
	}
	return nil
}
