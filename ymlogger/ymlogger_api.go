package ymlogger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu          sync.RWMutex
	logger      = newLogrus(os.Stdout)
	logSeverity = DEBUG
	base        logrus.Fields
)

func newLogrus(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "log_time",
			logrus.FieldKeyLevel: "log_level",
			logrus.FieldKeyMsg:   "msg",
		},
	})
	// Filtering happens on LogLevel so CRITICAL can sit above ERROR.
	l.SetLevel(logrus.DebugLevel)
	return l
}

// LogError logs all the error level statments
func LogError(requestID string, v ...interface{}) {
	Log(requestID, 2, ERROR, v...)
}

//LogCritical logs all the critical level statements
func LogCritical(requestID string, v ...interface{}) {
	Log(requestID, 2, CRITICAL, v...)
}

//LogInfo logs all the info level statements
func LogInfo(requestID string, v ...interface{}) {
	Log(requestID, 2, INFO, v...)
}

//LogDebug logs all the debug level statements
func LogDebug(requestID string, v ...interface{}) {
	Log(requestID, 2, DEBUG, v...)
}

//LogErrorf logs all the error level statements in given format
func LogErrorf(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, ERROR, format, v...)
}

//LogCriticalf logs all the critical level statements in given format
func LogCriticalf(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, CRITICAL, format, v...)
}

//LogInfof logs all the info level statements in given format
func LogInfof(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, INFO, format, v...)
}

//LogDebugf logs all the debug level statements in given format
func LogDebugf(requestID string, format string, v ...interface{}) {
	Logf(requestID, 2, DEBUG, format, v...)
}

//Log logs all statements without formatting
func Log(requestID string, stackLevel int, logLevel LogLevel, v ...interface{}) {
	write(requestID, stackLevel+1, logLevel, fmt.Sprint(v...))
}

//Logf logs all statements with formatting
func Logf(requestID string, stackLevel int, logLevel LogLevel, format string, v ...interface{}) {
	write(requestID, stackLevel+1, logLevel, fmt.Sprintf(format, v...))
}

func write(requestID string, stackLevel int, level LogLevel, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if level < logSeverity {
		return
	}
	fields := logrus.Fields{
		"request_id": requestID,
		"level":      level.String(),
	}
	for k, v := range base {
		fields[k] = v
	}
	if _, filename, line, ok := runtime.Caller(stackLevel); ok {
		fields["file_name"] = filepath.Base(filename)
		fields["line_num"] = line
	}
	logger.WithFields(fields).Log(level.logrusLevel(), msg)
}

// InitYMLogger initializes the logger with service specific config
func InitYMLogger(l LoggerConf) error {
	var out io.Writer = os.Stdout
	if l.LogFileName != "" && !l.ConsoleLog {
		f, err := os.OpenFile(l.LogFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Println("Unable to open the log file", l.LogFileName)
			return err
		}
		out = f
	}
	hostname, _ := os.Hostname()

	mu.Lock()
	defer mu.Unlock()
	logger = newLogrus(out)
	logSeverity = logSeverity.FromString(l.LogSeverity)
	base = logrus.Fields{
		"process_name": l.ProcessName,
		"hostname":     hostname,
		"process_id":   os.Getpid(),
	}
	return nil
}

// SetOutput redirects the log lines, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}
