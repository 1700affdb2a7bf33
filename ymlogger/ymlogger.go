package ymlogger

import (
	"github.com/sirupsen/logrus"
)

// LogLevel defines the severity for LOG data type
type LogLevel byte

const (
	// DEBUG for debug level statements
	DEBUG LogLevel = iota
	// INFO for info level statements
	INFO
	// ERROR for error level statements
	ERROR
	// CRITICAL for critical level statements
	CRITICAL
)

func (logLevel LogLevel) String() string {
	switch logLevel {
	case CRITICAL:
		return "CRITICAL"
	case ERROR:
		return "ERROR"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

//FromString returns the enum based on the string of the log severity
func (logLevel LogLevel) FromString(severity string) LogLevel {
	switch severity {
	case "CRITICAL":
		return CRITICAL
	case "ERROR":
		return ERROR
	case "INFO":
		return INFO
	case "DEBUG":
		return DEBUG
	default:
		return INFO
	}
}

// logrusLevel maps the severity onto the logrus level used for the entry.
// CRITICAL is written at error level with a critical flag so that the
// process is never terminated by the logger.
func (logLevel LogLevel) logrusLevel() logrus.Level {
	switch logLevel {
	case CRITICAL, ERROR:
		return logrus.ErrorLevel
	case INFO:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// LoggerConf defines the service specific config for logger
type LoggerConf struct {
	ProcessName string `mapstructure:"process_name"`
	LogSeverity string `mapstructure:"log_severity"`
	LogFileName string `mapstructure:"log_file_name"`
	ConsoleLog  bool   `mapstructure:"console_log"`
}
