package config

import (
	"errors"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr        string
	DBPath      string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool
}

func setDefaults() {
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", 8080)
	viper.SetDefault("db_path", "formdesk.sqlite")
	viper.SetDefault("token_ttl", 120)
	viper.SetDefault("debug", false)
}

// Load reads configuration from FORMDESK_* environment variables over
// the defaults above. token_secret has no default and must be set.
func Load() (cfg Config, err error) {
	setDefaults()
	viper.SetEnvPrefix("formdesk")
	viper.AutomaticEnv()

	cfg.Addr = net.JoinHostPort(viper.GetString("host"), strconv.Itoa(viper.GetInt("port")))
	cfg.DBPath = viper.GetString("db_path")
	cfg.TokenSecret = viper.GetString("token_secret")
	cfg.TokenTTL = time.Duration(viper.GetInt("token_ttl")) * time.Second
	cfg.Debug = viper.GetBool("debug")

	if cfg.TokenSecret == "" {
		err = errors.New("missing configuration FORMDESK_TOKEN_SECRET")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
