// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"testing"
)

// withCleanEnv clears the environment, sets the given vars, and returns a
// cleanup function that restores the original env. Use with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withCleanEnv(t, map[string]string{
//	        "SESSION_BACKEND": "redis",
//	    }))
//	}
func withCleanEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()

	originalEnv := os.Environ()
	os.Clearenv()

	for key, value := range vars {
		os.Setenv(key, value)
	}

	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i := 0; i < len(env); i++ {
				if env[i] == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}
}
