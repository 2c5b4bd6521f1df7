package providers

import (
	"dropxhub/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("catalog.seedSamples", true)
	v.SetDefault("catalog.relatedLimit", 4)
	v.SetDefault("cache.ttl", "5s")

	_ = v.BindEnv("logger.level", "DROPX_LOG_LEVEL")
	_ = v.BindEnv("storage.filePath", "DROPX_STORAGE_FILE")
	_ = v.BindEnv("cache.enabled", "DROPX_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "DROPX_CACHE_SIZE")
	_ = v.BindEnv("admin.passwordHash", "DROPX_ADMIN_PASSWORD_HASH")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "DropXHub"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
