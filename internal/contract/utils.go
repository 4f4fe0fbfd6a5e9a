package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Correlation strength label constants.
const (
	StrongValue   = "Strong"
	ModerateValue = "Moderate"
	WeakValue     = "Weak"
	NotComputable = "n/a"
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgRed, color.Bold) // strong association stands out
	ModerateColor = color.New(color.FgYellow)
	WeakColor     = color.New(color.FgCyan)
	AbsentColor   = color.New(color.Faint)
)

// GetPlainLabel returns a plain text label for the absolute strength of
// a correlation coefficient. The thresholds match the bands the
// dashboard reports (|rho| > 0.6 strong, > 0.3 moderate).
func GetPlainLabel(coefficient *float64) string {
	if coefficient == nil {
		return NotComputable
	}
	switch abs := math.Abs(*coefficient); {
	case abs > 0.6:
		return StrongValue
	case abs > 0.3:
		return ModerateValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored strength label for table output.
func GetColorLabel(coefficient *float64) string {
	text := GetPlainLabel(coefficient)
	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default:
		return AbsentColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based
// on the provided file path. It falls back to os.Stdout when empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for result
// cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".arboclima_cache.db"
	}
	return filepath.Join(homeDir, ".arboclima_cache.db")
}
