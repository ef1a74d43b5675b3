// Package config loads hobbycard settings from an optional YAML file and
// HOBBYCARD_* environment variables, shared by the CLI and the server.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var keys = map[string]any{
	"listen_address":    ":8080",
	"fonts_dir":         "",
	"shadow_opacity":    0.8,
	"overlay_opacity":   1.0,
	"anchor":            "bottom-right",
	"preview_max_width": 400,
	"image_cache_size":  64,
	"fetch_timeout":     "10s",
	"allowed_origins":   []string{"*"},
}

// Init sets defaults, binds the environment and reads path, or
// ~/.hobbycard.yaml when path is empty. A missing file is not an error.
func Init(path string) {
	viper.SetConfigType("yaml")
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		viper.SetConfigName(".hobbycard")
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix("hobbycard")
	viper.AutomaticEnv()
	for key, def := range keys {
		viper.SetDefault(key, def)
		_ = viper.BindEnv(key, "HOBBYCARD_"+strings.ToUpper(key))
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("viper can't read config file: %v", err)
	}
	log.Printf("Using listen address: %s", ListenAddress())
	if dir := FontsDir(); dir != "" {
		log.Printf("Using fonts directory: %s", dir)
	}
}

func ListenAddress() string {
	return viper.GetString("listen_address")
}

func FontsDir() string {
	return viper.GetString("fonts_dir")
}

func ShadowOpacity() float64 {
	return viper.GetFloat64("shadow_opacity")
}

func OverlayOpacity() float64 {
	return viper.GetFloat64("overlay_opacity")
}

func Anchor() string {
	return viper.GetString("anchor")
}

func PreviewMaxWidth() int {
	return viper.GetInt("preview_max_width")
}

func ImageCacheSize() int {
	return viper.GetInt("image_cache_size")
}

// FetchTimeout bounds remote image downloads.
func FetchTimeout() time.Duration {
	return viper.GetDuration("fetch_timeout")
}

// AllowedOrigins lists CORS origins for the editor API. Environment values
// are comma separated.
func AllowedOrigins() []string {
	var out []string
	for _, o := range viper.GetStringSlice("allowed_origins") {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
