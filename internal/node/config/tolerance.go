package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthanhphan/gosdk/logger"
)

const (
	DefaultToleranceFile = "tolerance.conf"
	DefaultTolerance     = 1

	toleranceKey = "TOLERANCE="
)

// LoadTolerance reads the replication fan-out factor from a file holding a
// TOLERANCE=<int> line. A missing file, missing line or malformed value
// yields DefaultTolerance; values below 1 are clamped to 1.
func LoadTolerance(path string) int {
	tolerance, err := readTolerance(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warnw("Tolerance file not found, using default", "path", path, "tolerance", DefaultTolerance)
		} else {
			logger.Warnw("Failed to read tolerance file, using default", "path", path, "tolerance", DefaultTolerance, "error", err.Error())
		}
		return DefaultTolerance
	}

	logger.Infow("Tolerance config loaded", "path", path, "tolerance", tolerance)
	return tolerance
}

func readTolerance(path string) (int, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, toleranceKey) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, toleranceKey))
		t, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid tolerance %q: %w", value, err)
		}
		return max(t, 1), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, fmt.Errorf("no %s line", strings.TrimSuffix(toleranceKey, "="))
}
