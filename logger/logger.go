package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
	DebugLogger *logrus.Logger
)

func init() {
	// Stdout-only loggers so packages (and tests) can log before InitLoggers runs.
	InfoLogger = newLogger(os.Stdout, logrus.InfoLevel)
	WarnLogger = newLogger(os.Stdout, logrus.WarnLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
	DebugLogger = newLogger(os.Stdout, logrus.DebugLevel)
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// InitLoggers attaches rotating file outputs in addition to the console.
// Called once from main before anything else runs.
func InitLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	attachFile(InfoLogger, os.Stdout, logDir+"/info.log")
	attachFile(WarnLogger, os.Stdout, logDir+"/warn.log")
	attachFile(ErrorLogger, os.Stderr, logDir+"/error.log")
	attachFile(DebugLogger, os.Stdout, logDir+"/debug.log")
}

func attachFile(l *logrus.Logger, console io.Writer, filename string) {
	l.SetOutput(io.MultiWriter(console, &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}))
}
