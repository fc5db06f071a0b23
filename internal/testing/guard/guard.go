// Package guard flips the binaries into test mode when imported from a
// test, so calling main never dials Redis or Postgres.
package guard

import (
	"os"
	"sync"
)

// Env is the variable the binaries consult before starting.
const Env = "MOVEQUOTE_TEST_MODE"

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv(Env) == "" {
			_ = os.Setenv(Env, "1")
		}
	})
}
