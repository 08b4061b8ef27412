package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var (
	ErrMissingInput          = errors.New("input_path is required")
	ErrInvalidOutputFormat   = errors.New("output.format must be one of: console, csv, json, parquet, xlsx, sqlite, postgres, kafka")
	ErrInvalidDestination    = errors.New("output.destination must be 'local' or 's3'")
	ErrMissingBucket         = errors.New("cloud_storage.bucket_name is required for s3 destination")
	ErrUnsupportedCloud      = errors.New("cloud_storage.provider must be 's3'")
	ErrMissingOutputPath     = errors.New("output.path is required for file outputs")
	ErrMissingDatabaseURL    = errors.New("database.url is required for postgres output")
	ErrMissingSQLitePath     = errors.New("database.sqlite_path is required for sqlite output")
	ErrMissingKafkaBrokers   = errors.New("kafka.broker_list is required for kafka output")
	ErrInvalidDelimiter      = errors.New("csv_delimiter must be a single character")
	ErrInvalidTopN           = errors.New("report.top_n must be at least 1")
	ErrInvalidGenerateCount  = errors.New("generate.count must be at least 1")
	ErrS3RequiresFileFormats = errors.New("s3 destination supports csv, json, parquet and xlsx outputs only")
	ErrInvalidReportFormat   = errors.New("report.format must be one of: text, json, xlsx")
	ErrMissingGenerateOutput = errors.New("generate.output_path is required")
	ErrInvalidReportSource   = errors.New("report.source must be one of: input, sqlite, postgres")
)

type OutputConfig struct {
	Format      string `mapstructure:"format"`
	Path        string `mapstructure:"path"`
	Folder      string `mapstructure:"folder"`
	Destination string `mapstructure:"destination"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type KafkaConfig struct {
	BrokerList string `mapstructure:"broker_list"`
	Topic      string `mapstructure:"topic"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	SQLitePath     string        `mapstructure:"sqlite_path"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

type ReportConfig struct {
	TopN           int    `mapstructure:"top_n"`
	CoffeeCategory string `mapstructure:"coffee_category"`
	Format         string `mapstructure:"format"`
	OutputPath     string `mapstructure:"output_path"` // empty writes to stdout
	Source         string `mapstructure:"source"`
}

type GenerateConfig struct {
	Seed       int64  `mapstructure:"seed"`
	Count      int    `mapstructure:"count"`
	OutputPath string `mapstructure:"output_path"`
}

type Config struct {
	InputPath    string             `mapstructure:"input_path"`
	CSVDelimiter string             `mapstructure:"csv_delimiter"`
	LogLevel     string             `mapstructure:"log_level"`
	Progress     bool               `mapstructure:"progress"`
	Output       OutputConfig       `mapstructure:"output"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	Report       ReportConfig       `mapstructure:"report"`
	Generate     GenerateConfig     `mapstructure:"generate"`
}

// SetDefaults registers every known key so that environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_path", "")
	v.SetDefault("csv_delimiter", ",")
	v.SetDefault("log_level", "info")
	v.SetDefault("progress", true)
	v.SetDefault("output.format", OutputFormatCSV)
	v.SetDefault("output.path", "out")
	v.SetDefault("output.folder", "cleaned")
	v.SetDefault("output.destination", DestinationLocal)
	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.region", "eu-central-1")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("kafka.broker_list", "localhost:9092")
	v.SetDefault("kafka.topic", "venues.cleaned")
	v.SetDefault("database.url", "")
	v.SetDefault("database.sqlite_path", "")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "foodvenues")
	v.SetDefault("report.top_n", 15)
	v.SetDefault("report.coffee_category", "кофейня")
	v.SetDefault("report.format", ReportFormatText)
	v.SetDefault("report.output_path", "")
	v.SetDefault("report.source", ReportSourceInput)
	v.SetDefault("generate.seed", 42)
	v.SetDefault("generate.count", 1000)
	v.SetDefault("generate.output_path", "venues.csv")
}

// LoadConfig initializes and reads the configuration using Viper. A missing
// config file is not an error; defaults, environment and bound flags apply.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	v.SetEnvPrefix("FOODVENUES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))
	config.Output.Destination = strings.ToLower(strings.TrimSpace(config.Output.Destination))
	config.Report.Format = strings.ToLower(strings.TrimSpace(config.Report.Format))
	config.Report.Source = strings.ToLower(strings.TrimSpace(config.Report.Source))
	return &config, nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (cfg *Config) Delimiter() rune {
	r := []rune(cfg.CSVDelimiter)
	if len(r) != 1 {
		return ','
	}
	return r[0]
}

// ValidateInput checks the settings needed to read the input table.
func (cfg *Config) ValidateInput() error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return ErrMissingInput
	}
	if len([]rune(cfg.CSVDelimiter)) != 1 {
		return ErrInvalidDelimiter
	}
	return nil
}

// ValidateReport checks the settings the report command depends on.
func (cfg *Config) ValidateReport() error {
	switch cfg.Report.Source {
	case ReportSourceInput:
		if err := cfg.ValidateInput(); err != nil {
			return err
		}
	case OutputFormatSQLite:
		if cfg.Database.SQLitePath == "" {
			return ErrMissingSQLitePath
		}
	case OutputFormatPostgres:
		if cfg.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return ErrInvalidReportSource
	}
	if cfg.Report.TopN < 1 {
		return ErrInvalidTopN
	}
	switch cfg.Report.Format {
	case ReportFormatText, ReportFormatJSON, ReportFormatXLSX:
	default:
		return ErrInvalidReportFormat
	}
	if cfg.Output.Destination == DestinationS3 && cfg.CloudStorage.BucketName == "" {
		return ErrMissingBucket
	}
	return nil
}

// ValidateGenerate checks the settings the generate command depends on.
func (cfg *Config) ValidateGenerate() error {
	if cfg.Generate.Count < 1 {
		return ErrInvalidGenerateCount
	}
	if strings.TrimSpace(cfg.Generate.OutputPath) == "" {
		return ErrMissingGenerateOutput
	}
	return nil
}

// Validate checks the settings the clean command depends on.
func (cfg *Config) Validate() error {
	if err := cfg.ValidateInput(); err != nil {
		return err
	}

	switch cfg.Output.Destination {
	case DestinationLocal:
	case DestinationS3:
		if cfg.CloudStorage.Provider != "s3" {
			return ErrUnsupportedCloud
		}
		if cfg.CloudStorage.BucketName == "" {
			return ErrMissingBucket
		}
		switch cfg.Output.Format {
		case OutputFormatCSV, OutputFormatJSON, OutputFormatParquet, OutputFormatXLSX:
		default:
			return ErrS3RequiresFileFormats
		}
	default:
		return ErrInvalidDestination
	}

	switch cfg.Output.Format {
	case OutputFormatConsole:
	case OutputFormatCSV, OutputFormatJSON, OutputFormatParquet, OutputFormatXLSX:
		if cfg.Output.Path == "" {
			return ErrMissingOutputPath
		}
	case OutputFormatSQLite:
		if cfg.Database.SQLitePath == "" {
			return ErrMissingSQLitePath
		}
	case OutputFormatPostgres:
		if cfg.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
	case OutputFormatKafka:
		if strings.TrimSpace(cfg.Kafka.BrokerList) == "" {
			return ErrMissingKafkaBrokers
		}
	default:
		return ErrInvalidOutputFormat
	}

	if cfg.Report.TopN < 1 {
		return ErrInvalidTopN
	}
	return nil
}

// Brokers splits the comma separated broker list.
func (k KafkaConfig) Brokers() []string {
	var out []string
	for _, b := range strings.Split(k.BrokerList, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
