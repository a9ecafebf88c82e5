package utils

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Debug logger, disabled unless -verbose is set
var (
	isVerbose = false
	logFile   *os.File
	logger    *slog.Logger
)

// Log records a debug message if verbose mode is enabled
func Log(text string, args ...interface{}) {
	if isVerbose && logger != nil {
		logger.Debug(fmt.Sprintf(text, args...))
	}
}

// InitLogger initializes the logging system
func InitLogger(verbose bool) {
	isVerbose = verbose

	if verbose {
		// Log filename carries the current date
		logFileName := fmt.Sprintf("/tmp/tobedone_%s.log", time.Now().Format("2006-01-02"))

		var err error
		logFile, err = os.Create(logFileName)
		if err != nil {
			fmt.Printf("Error creating log file: %v\n", err)
			return
		}

		logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))

		Log("Verbose logging enabled")
	}
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
