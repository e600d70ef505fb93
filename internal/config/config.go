package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	presaleconfig "github.com/gaze-network/presale-ledger/modules/presale/config"
	"github.com/gaze-network/presale-ledger/modules/presale/export"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/gaze-network/presale-ledger/pkg/middleware/requestcontext"
	"github.com/gaze-network/presale-ledger/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
		Presale: presaleconfig.Config{
			Native: presaleconfig.NativeConfig{
				Symbol:   "ETH",
				Decimals: 18,
			},
			Oracle: presaleconfig.OracleConfig{
				Source: "static",
			},
		},
	}
)

type Config struct {
	Logger     logger.Config        `mapstructure:"logger"`
	HTTPServer HTTPServerConfig     `mapstructure:"http_server"`
	Presale    presaleconfig.Config `mapstructure:"presale"`
	Export     export.Config        `mapstructure:"export"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"requestip"`

	// MetricsPath serves prometheus metrics when non-empty. E.g. "/metrics"
	MetricsPath string `mapstructure:"metrics_path"`
}

// Parse parse the configuration from environment variables
func Parse(configFile ...string) Config {
	configOnce.Do(func() {
		ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

		if len(configFile) > 0 && configFile[0] != "" {
			viper.SetConfigFile(configFile[0])
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
		}
	})

	return *config
}

// Load returns the loaded configuration
func Load() Config {
	return Parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
// Example (where serverCmd is a Cobra instance):
//
//	serverCmd.Flags().Int("port", 1138, "Port to run Application server on")
//	Viper.BindPFlag("port", serverCmd.Flags().Lookup("port"))
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}
