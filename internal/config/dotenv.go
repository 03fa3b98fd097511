package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from ".env" in the current
// directory. A missing file is not an error, and existing environment
// variables are never overridden.
func LoadDotEnv() {
	LoadDotEnvFile(".env")
}

// LoadDotEnvFile loads environment variables from the given file.
// Non-existent files are silently skipped.
func LoadDotEnvFile(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	_ = godotenv.Load(path)
}
