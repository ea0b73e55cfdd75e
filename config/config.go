package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	APIPrefix       string        `mapstructure:"api_prefix"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ShopConfig struct {
	Currency             string `mapstructure:"currency"`
	Language             string `mapstructure:"language"`
	LowStockThreshold    int    `mapstructure:"low_stock_threshold"`
	SuggestionProductIDs []uint `mapstructure:"suggestion_product_ids"`
}

type PaginationConfig struct {
	PublicDefault   int `mapstructure:"public_default"`
	PublicMax       int `mapstructure:"public_max"`
	AdminDefault    int `mapstructure:"admin_default"`
	AdminMax        int `mapstructure:"admin_max"`
	CategoryDefault int `mapstructure:"category_default"`
}

type UploadsConfig struct {
	Dir        string   `mapstructure:"dir"`
	URLPrefix  string   `mapstructure:"url_prefix"`
	MaxSize    int64    `mapstructure:"max_size"`
	AllowedExt []string `mapstructure:"allowed_ext"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	MaxOpen            int           `mapstructure:"max_open"`
	MaxIdle            int           `mapstructure:"max_idle"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Shop       ShopConfig       `mapstructure:"shop"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
	Cors       CorsConfig       `mapstructure:"cors"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

var vp *viper.Viper

// LoadConfig reads config/config.json. Any key can be overridden from the
// environment as HANDORA_<SECTION>_<KEY>, e.g. HANDORA_SERVER_PORT.
func LoadConfig() (Config, error) {
	vp = viper.New()

	var config Config

	setDefaults(vp)

	vp.SetConfigName("config")
	vp.SetConfigType("json")
	vp.AddConfigPath("config")
	vp.AddConfigPath(".")

	vp.SetEnvPrefix("HANDORA")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	err := vp.ReadInConfig()
	if err != nil {
		return Config{}, err
	}

	err = vp.Unmarshal(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("server.port", ":8000")
	vp.SetDefault("server.api_prefix", "/api")
	vp.SetDefault("server.read_timeout", "15s")
	vp.SetDefault("server.write_timeout", "30s")
	vp.SetDefault("server.shutdown_timeout", "10s")

	vp.SetDefault("shop.currency", "AZN")
	vp.SetDefault("shop.language", "az")
	vp.SetDefault("shop.low_stock_threshold", 5)

	vp.SetDefault("pagination.public_default", 20)
	vp.SetDefault("pagination.public_max", 100)
	vp.SetDefault("pagination.admin_default", 50)
	vp.SetDefault("pagination.admin_max", 100)
	vp.SetDefault("pagination.category_default", 100)

	vp.SetDefault("uploads.dir", "uploads")
	vp.SetDefault("uploads.url_prefix", "/uploads")
	vp.SetDefault("uploads.max_size", 5<<20)
	vp.SetDefault("uploads.allowed_ext", []string{".jpg", ".jpeg", ".png"})

	vp.SetDefault("database.max_open", 25)
	vp.SetDefault("database.max_idle", 5)
	vp.SetDefault("database.conn_max_lifetime", "30m")
	vp.SetDefault("database.slow_query_threshold", "200ms")
}
