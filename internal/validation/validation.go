// Package validation checks command-line inputs before any work is done.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// InputFile checks that path names an existing regular file.
func InputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file path is empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input path %s is not a regular file", path)
	}
	return nil
}

// OutputFormat checks format against the allowed set, ignoring case.
func OutputFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format '%s' (use %s)", format, strings.Join(allowed, ", "))
}
