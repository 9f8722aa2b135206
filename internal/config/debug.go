package config

import "os"

// IsDebug reports the build-mode flag. It gates verbose logging, metric
// logging and the error detail panel.
func IsDebug() bool {
	return os.Getenv("ORAC_DEBUG") == "1"
}
