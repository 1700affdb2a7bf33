package configmanager

import (
	"errors"
	"os"
	"strings"

	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/spf13/viper"
)

// ServerConf holds the HTTP listener settings
type ServerConf struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Debug     bool   `mapstructure:"debug"`
	BodyLimit string `mapstructure:"body_limit"`
	IndexFile string `mapstructure:"index_file"`
	// ProcessRequestsPerSecond throttles /process before any tool is spawned
	ProcessRequestsPerSecond float64 `mapstructure:"process_requests_per_second"`
	ProcessBurst             int     `mapstructure:"process_burst"`
}

// UploadConf holds the upload folder settings
type UploadConf struct {
	Dir               string `mapstructure:"dir"`
	AnalysisMaxFrames int    `mapstructure:"analysis_max_frames"`
	RetentionMinutes  int    `mapstructure:"retention_minutes"`
	SweepIntervalSec  int    `mapstructure:"sweep_interval_seconds"`
}

// EffectsConf holds the settings for the external effect binaries
type EffectsConf struct {
	BinDir             string  `mapstructure:"bin_dir"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds"`
	MaxRate            float64 `mapstructure:"max_rate"`
	Burst              int     `mapstructure:"burst"`
	LatencyThresholdMS int     `mapstructure:"latency_threshold_ms"`
}

// ConvertConf holds the OS audio conversion utility settings
type ConvertConf struct {
	Bin  string   `mapstructure:"bin"`
	Args []string `mapstructure:"args"`
}

// NewRelicConf holds the APM settings. The agent is disabled without a license.
type NewRelicConf struct {
	AppName string `mapstructure:"app_name"`
	License string `mapstructure:"license"`
}

// AzureArchiveConf holds the blob container used for archiving outputs
type AzureArchiveConf struct {
	AccountName   string `mapstructure:"account_name"`
	AccountKey    string `mapstructure:"account_key"`
	ContainerName string `mapstructure:"container_name"`
	Prefix        string `mapstructure:"prefix"`
}

// S3ArchiveConf holds the bucket used for archiving outputs
type S3ArchiveConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

// ArchiveConf selects where processed outputs are copied. Empty provider disables it.
type ArchiveConf struct {
	Provider string           `mapstructure:"provider"`
	Azure    AzureArchiveConf `mapstructure:"azure"`
	S3       S3ArchiveConf    `mapstructure:"s3"`
}

// EventsConf holds the AMQP broker used for processed-file events
type EventsConf struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	UserName   string `mapstructure:"user_name"`
	Password   string `mapstructure:"password"`
	Exchange   string `mapstructure:"exchange"`
	QueueName  string `mapstructure:"queue_name"`
	RoutingKey string `mapstructure:"routing_key"`
	Durable    bool   `mapstructure:"durable"`
}

type appconfig struct {
	LoggerConf ymlogger.LoggerConf `mapstructure:"logger_conf"`
	Server     ServerConf          `mapstructure:"server"`
	Upload     UploadConf          `mapstructure:"upload"`
	Effects    EffectsConf         `mapstructure:"effects"`
	Convert    ConvertConf         `mapstructure:"convert"`
	NewRelic   NewRelicConf        `mapstructure:"newrelic"`
	Archive    ArchiveConf         `mapstructure:"archive"`
	Events     EventsConf          `mapstructure:"events"`
}

// ConfStore stores the configuration variables
var ConfStore *appconfig

// EnvPrefix is prepended to every environment override, e.g. AUDIOLAB_SERVER_PORT
const EnvPrefix = "AUDIOLAB"

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger_conf.process_name", "audiolab")
	v.SetDefault("logger_conf.log_severity", "INFO")
	v.SetDefault("logger_conf.log_file_name", "")
	v.SetDefault("logger_conf.console_log", true)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.body_limit", "16M")
	v.SetDefault("server.index_file", "")
	v.SetDefault("server.process_requests_per_second", 5)
	v.SetDefault("server.process_burst", 10)

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.analysis_max_frames", 10000)
	v.SetDefault("upload.retention_minutes", 0)
	v.SetDefault("upload.sweep_interval_seconds", 60)

	v.SetDefault("effects.bin_dir", "../build")
	v.SetDefault("effects.timeout_seconds", 30)
	v.SetDefault("effects.max_rate", 4)
	v.SetDefault("effects.burst", 4)
	v.SetDefault("effects.latency_threshold_ms", 5000)

	v.SetDefault("convert.bin", "afconvert")
	v.SetDefault("convert.args", []string{"-f", "WAVE", "-d", "LEI16"})

	v.SetDefault("newrelic.app_name", "Audio Lab")
	v.SetDefault("newrelic.license", "")

	v.SetDefault("archive.provider", "")
	v.SetDefault("archive.azure.account_name", "")
	v.SetDefault("archive.azure.account_key", "")
	v.SetDefault("archive.azure.container_name", "")
	v.SetDefault("archive.azure.prefix", "")
	v.SetDefault("archive.s3.region", "")
	v.SetDefault("archive.s3.bucket", "")
	v.SetDefault("archive.s3.prefix", "")

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.host", "localhost")
	v.SetDefault("events.port", 5672)
	v.SetDefault("events.user_name", "guest")
	v.SetDefault("events.password", "guest")
	v.SetDefault("events.exchange", "")
	v.SetDefault("events.queue_name", "audio_processed")
	v.SetDefault("events.routing_key", "audio_processed")
	v.SetDefault("events.durable", true)
}

// InitConfig initializes the config. A missing file leaves the defaults and
// environment overrides in place; a file that can't be parsed is an error.
func InitConfig(
	fileName string,
) error {
	conf, err := Load(fileName)
	if err != nil {
		return err
	}
	ConfStore = conf
	return nil
}

// Load reads the config without touching ConfStore
func Load(fileName string) (*appconfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(fileName) > 0 {
		v.SetConfigFile(fileName)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return nil, err
			}
			ymlogger.LogInfof("InitConfig", "Config file [%s] not found, using defaults", fileName)
		}
	}

	conf := new(appconfig)
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	return conf, nil
}
