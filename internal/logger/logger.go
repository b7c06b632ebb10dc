package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	debugMode bool
	writer    io.Writer
)

// Init sends log entries to a lumberjack rotating file. Nothing is ever
// written to stdout or stderr: stdout is the statusline itself.
func Init(logPath string, debug bool) {
	debugMode = debug
	if logPath == "" {
		writer = nil
		return
	}
	writer = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		Compress:   false,
	}
}

// SetOutput replaces the log destination. Used by tests.
func SetOutput(w io.Writer) {
	writer = w
}

func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// Close releases the rotating file, if any.
func Close() error {
	if c, ok := writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func formatEntry(level, message string) string {
	ts := time.Now().Format(time.RFC3339)
	pid := os.Getpid()
	return fmt.Sprintf("[%s] [PID=%d] [%s] %s", ts, pid, level, message)
}

func writeLog(entry string) {
	if writer == nil {
		return
	}
	writer.Write([]byte(entry + "\n"))
}

func Debug(message string) {
	if !debugMode {
		return
	}
	writeLog(formatEntry("DEBUG", message))
}

func Error(message string) {
	writeLog(formatEntry("ERROR", message))
}
