package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

var logFileName = filepath.Join(os.TempDir(), "kolam.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// Logs go to a file in the temp dir because stdout belongs to the TUI.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Without a log file we still want non-nil loggers.
		discard(fmt.Sprintf("could not open log file %s: %s", logFileName, err))
		return
	}

	// Set log format to include timestamp and file/line number
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	InfoLog = log.New(f, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)

	globalLogFile = f

	InitDebug()
}

func discard(reason string) {
	InfoLog = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog = log.New(os.Stderr, "ERROR:", log.Ldate|log.Ltime)
	ErrorLog.Print(reason)
	InitDebug()
}

// InitializeDiscard sets every logger to discard output. Tests use it so that
// packages which log never see nil loggers.
func InitializeDiscard() {
	InfoLog = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog = log.New(io.Discard, "", 0)
	DebugLog = log.New(io.Discard, "", 0)
}

// Close flushes and closes the log files.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}

// Path returns the location of the main log file.
func Path() string {
	return logFileName
}
