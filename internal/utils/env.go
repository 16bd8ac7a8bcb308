package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads the .env file at the project root, falling back to the
// working directory when running outside the source tree.
func LoadEnv() error {
	root, err := FindProjectRoot()
	if err != nil {
		return godotenv.Load()
	}
	return godotenv.Load(filepath.Join(root, ".env"))
}
