// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// 設定キー。YAMLファイルでは小文字、環境変数では大文字で指定する。
const (
	keyDatabaseURL       = "database_url"
	keyTokenSecret       = "token_secret"
	keyTokenTTL          = "token_ttl"
	keyTokenIssuer       = "token_issuer"
	keyBcryptCost        = "bcrypt_cost"
	keyServerPort        = "server_port"
	keyCORSAllowedOrigin = "cors_allowed_origin"
	keyLogLevel          = "log_level"
	keyAdminPassword     = "admin_password"
)

var knownKeys = map[string]struct{}{
	keyDatabaseURL:       {},
	keyTokenSecret:       {},
	keyTokenTTL:          {},
	keyTokenIssuer:       {},
	keyBcryptCost:        {},
	keyServerPort:        {},
	keyCORSAllowedOrigin: {},
	keyLogLevel:          {},
	keyAdminPassword:     {},
}

// ConfigFileEnv は設定ファイルのパスを指定する環境変数名。
const ConfigFileEnv = "CONFIG_FILE"

// Config はアプリケーション全体の設定を保持する。
// 起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Token
	TokenSecret string
	TokenTTL    time.Duration
	TokenIssuer string

	// Password
	BcryptCost int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string

	// create-admin コマンドで非対話的にパスワードを渡す場合に使用する
	AdminPassword string
}

// Load は設定ファイル（CONFIG_FILEが指定された場合）と環境変数からConfigを読み込む。
// 環境変数はファイルの値より優先される。
// 必須項目が未設定の場合、またはTOKEN_TTL・BCRYPT_COSTが解析できない場合はエラーを返す。
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. 設定ファイル（任意）
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// 2. 環境変数（既知のキーのみ取り込む。空文字は未設定として扱う）
	if err := k.Load(env.ProviderWithValue("", ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return fromKoanf(k)
}

// envKeyValue は環境変数を設定キーと値に変換する。
// 未知の変数と空の値は空キーを返して読み飛ばす。
func envKeyValue(name, value string) (string, any) {
	key := strings.ToLower(name)
	if _, ok := knownKeys[key]; !ok || value == "" {
		return "", nil
	}
	return key, value
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = k.String(keyDatabaseURL)
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.TokenSecret = k.String(keyTokenSecret)
	if cfg.TokenSecret == "" {
		missing = append(missing, "TOKEN_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required settings are not set: %v", missing)
	}

	// Optional fields with defaults
	var err error
	cfg.TokenTTL, err = getDuration(k, keyTokenTTL, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenIssuer = getString(k, keyTokenIssuer, "valoriza")
	cfg.BcryptCost, err = getInt(k, keyBcryptCost, 10)
	if err != nil {
		return nil, err
	}
	cfg.ServerPort = getString(k, keyServerPort, "8080")
	cfg.CORSAllowedOrigin = getString(k, keyCORSAllowedOrigin, "http://localhost:3000")
	cfg.LogLevel = getString(k, keyLogLevel, "info")
	cfg.AdminPassword = k.String(keyAdminPassword)

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive: %s", cfg.TokenTTL)
	}

	return cfg, nil
}

func getString(k *koanf.Koanf, key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getInt は整数の設定値を返す。未設定の場合はdefaultValを返し、解析できない場合はエラーを返す。
func getInt(k *koanf.Koanf, key string, defaultVal int) (int, error) {
	v := k.String(key)
	if v == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", strings.ToUpper(key), v)
	}
	return i, nil
}

// getDuration は期間の設定値（例: "24h", "90m"）を返す。
// 未設定の場合はdefaultValを返し、解析できない場合はエラーを返す。
func getDuration(k *koanf.Koanf, key string, defaultVal time.Duration) (time.Duration, error) {
	v := k.String(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 24h: %q", strings.ToUpper(key), v)
	}
	return d, nil
}
