package internal

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	DefaultAppName     = "seeker"
	DefaultConfigPath  = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultConfigFile  = filepath.Join(DefaultConfigPath, "settings.json")
	DefaultIgnoreFile  = "." + DefaultAppName + "ignore"
	DefaultExportFile  = "search_result.json"
	DefaultEnvPrefix   = "SEEKER"
	DefaultSearchDepth = 255
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
