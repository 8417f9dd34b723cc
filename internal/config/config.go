package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
	Map   MapConfig   `yaml:"map" mapstructure:"map"`
	Data  DataConfig  `yaml:"data" mapstructure:"data"`
	Chart ChartConfig `yaml:"chart" mapstructure:"chart"`
}

// LogConfig configures logging. File, when set, replaces stderr so the
// terminal viewer keeps the screen to itself.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// MapConfig selects the topology and how its features are keyed.
type MapConfig struct {
	Topology     string   `yaml:"topology" mapstructure:"topology"`
	Collections  []string `yaml:"collections" mapstructure:"collections"`
	IDProperty   string   `yaml:"id_property" mapstructure:"id_property"`
	PadID        int      `yaml:"pad_id" mapstructure:"pad_id"`
	NameProperty string   `yaml:"name_property" mapstructure:"name_property"`
}

// DataConfig points at the tabular dataset.
type DataConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
	SheetIndex int    `yaml:"sheet_index" mapstructure:"sheet_index"`
}

// ChartConfig configures the join and the color encoding.
type ChartConfig struct {
	IDField    string       `yaml:"id_field" mapstructure:"id_field"`
	ValueField string       `yaml:"value_field" mapstructure:"value_field"`
	Opacity    float64      `yaml:"opacity" mapstructure:"opacity"`
	Scale      string       `yaml:"scale" mapstructure:"scale"`
	Palette    []string     `yaml:"palette" mapstructure:"palette"`
	Categories []string     `yaml:"categories" mapstructure:"categories"`
	Legend     LegendConfig `yaml:"legend" mapstructure:"legend"`
}

// LegendConfig configures the legend.
type LegendConfig struct {
	Title  string             `yaml:"title" mapstructure:"title"`
	Layout string             `yaml:"layout" mapstructure:"layout"`
	Locale string             `yaml:"locale" mapstructure:"locale"`
	Steps  int                `yaml:"steps" mapstructure:"steps"`
	Caps   map[string]float64 `yaml:"caps" mapstructure:"caps"`
}

// Load reads configuration from file and environment. An empty path
// searches for choromap.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("choromap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("CHOROMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("map.topology", "")
	v.SetDefault("map.id_property", "")
	v.SetDefault("map.pad_id", 0)
	v.SetDefault("map.name_property", "name")
	v.SetDefault("data.path", "")
	v.SetDefault("data.sheet", "")
	v.SetDefault("data.sheet_index", 0)
	v.SetDefault("chart.id_field", "")
	v.SetDefault("chart.value_field", "")
	v.SetDefault("chart.opacity", 0.7)
	v.SetDefault("chart.scale", "quantize")
	v.SetDefault("chart.legend.title", "")
	v.SetDefault("chart.legend.layout", "swatch")
	v.SetDefault("chart.legend.locale", "es-MX")
	v.SetDefault("chart.legend.steps", 10)
	v.SetDefault("chart.legend.caps", map[string]float64{"Porcentaje": 100})

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a chart cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.Map.Topology == "" {
		missing = append(missing, "map.topology is required")
	}
	if c.Data.Path == "" {
		missing = append(missing, "data.path is required")
	}
	if c.Chart.IDField == "" {
		missing = append(missing, "chart.id_field is required")
	}
	if c.Chart.ValueField == "" {
		missing = append(missing, "chart.value_field is required")
	}
	switch c.Chart.Scale {
	case "quantize", "ordinal":
	default:
		missing = append(missing, "chart.scale must be quantize or ordinal")
	}
	switch c.Chart.Legend.Layout {
	case "swatch", "gradient":
	default:
		missing = append(missing, "chart.legend.layout must be swatch or gradient")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
