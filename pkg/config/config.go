package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"postindex/pkg/models"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	RepoPath   string
	ContentDir string
	CMSConfig  string
	Collection models.Collection

	// LoadConcurrency caps parallel unit loads; 0 means no cap.
	LoadConcurrency int

	AppAddr  string
	LogLevel string

	Bucket BucketConfig
}

type BucketConfig struct {
	Name      string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
	UseSSL    bool
}

// Enabled reports whether content is served from a bucket instead of disk.
func (b BucketConfig) Enabled() bool {
	return strings.TrimSpace(b.Name) != ""
}

// Init loads .env, then settings from the environment and the optional
// config file. cfgFile may be empty.
func Init(cfgFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	cfg := Config{
		RepoPath:        v.GetString("REPO_PATH"),
		ContentDir:      v.GetString("CONTENT_DIR"),
		LoadConcurrency: v.GetInt("LOAD_CONCURRENCY"),
		AppAddr:         v.GetString("APP_ADDR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Bucket: BucketConfig{
			Name:      v.GetString("CONTENT_BUCKET"),
			Endpoint:  v.GetString("S3_ENDPOINT"),
			Region:    v.GetString("S3_REGION"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			Prefix:    v.GetString("S3_PREFIX"),
			UseSSL:    v.GetBool("S3_USE_SSL"),
		},
	}
	if cfg.LoadConcurrency < 0 {
		return Config{}, fmt.Errorf("LOAD_CONCURRENCY must not be negative, got %d", cfg.LoadConcurrency)
	}

	name := v.GetString("COLLECTION")
	cfg.Collection = models.Collection{
		Name:      name,
		Folder:    path.Join(filepath.ToSlash(cfg.ContentDir), name),
		Path:      v.GetString("ENTRY_PATH"),
		Extension: v.GetString("ENTRY_EXTENSION"),
	}

	cfg.CMSConfig = v.GetString("CMS_CONFIG")
	if cfg.CMSConfig == "" {
		cfg.CMSConfig = filepath.Join(cfg.RepoPath, "static", "admin", "config.yml")
	}
	cms, err := LoadCMSConfig(cfg.CMSConfig)
	if err != nil {
		return Config{}, err
	}
	if col, ok := cms.Find(name); ok {
		cfg.Collection = mergeCollection(cfg.Collection, col)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("REPO_PATH", "./repo")
	v.SetDefault("CONTENT_DIR", "content")
	v.SetDefault("COLLECTION", "post")
	v.SetDefault("ENTRY_PATH", "index")
	v.SetDefault("ENTRY_EXTENSION", "md")
	v.SetDefault("CMS_CONFIG", "")
	v.SetDefault("LOAD_CONCURRENCY", 0)
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CONTENT_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_PREFIX", "")
	v.SetDefault("S3_USE_SSL", false)
}

// LoadCMSConfig reads the Decap style admin config. A missing file yields
// an empty config.
func LoadCMSConfig(configPath string) (models.CMSConfig, error) {
	content, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return models.CMSConfig{}, nil
	}
	if err != nil {
		return models.CMSConfig{}, fmt.Errorf("read cms config %s: %w", configPath, err)
	}

	var cfg models.CMSConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return models.CMSConfig{}, fmt.Errorf("parse cms config %s: %w", configPath, err)
	}
	return cfg, nil
}

func mergeCollection(base, override models.Collection) models.Collection {
	if override.Label != "" {
		base.Label = override.Label
	}
	if override.Folder != "" {
		base.Folder = strings.Trim(filepath.ToSlash(override.Folder), "/")
	}
	if override.Path != "" {
		base.Path = override.Path
	}
	if override.Extension != "" {
		base.Extension = override.Extension
	}
	return base
}
