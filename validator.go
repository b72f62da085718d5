package dataprep

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// validator handles path validation for the ingest and write stages
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validateInputDir checks that dir exists and is a directory
func (v *validator) validateInputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s: %w", dir, err)
		}
		return fmt.Errorf("failed to stat path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// validateOutputDir checks that the output directory exists and is a directory
func (v *validator) validateOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOutputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: output path exists but is not a directory: %s", ErrInvalidOutputDir, dir)
	}
	return nil
}

// validateDatabaseFile checks that dbPath names an existing file
func (v *validator) validateDatabaseFile(dbPath string) error {
	info, err := os.Stat(dbPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidData, dbPath)
	}
	return nil
}
