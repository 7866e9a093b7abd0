package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "BOARDROOM"
	appDirName = "boardroom"
)

const (
	KeyPanelPath          = "panel.path"
	KeyHistoryDir         = "history.dir"
	KeyHistoryDatabase    = "history.database"
	KeyHistorySinks       = "history.sinks"
	KeySecretsDir         = "secrets.dir"
	KeySecretsPassPrefix  = "secrets.pass_prefix"
	KeyProviderKind       = "provider.kind"
	KeyProviderBaseURL    = "provider.base_url"
	KeyProviderModel      = "provider.model"
	KeyProviderTemp       = "provider.temperature"
	KeyProviderAPIKeyRef  = "provider.api_key_ref"
	KeyProviderRetries    = "provider.max_retries"
	KeyMaxIterations      = "deliberation.max_iterations"
	KeyConsensusThreshold = "deliberation.consensus_threshold"
	KeyEmbodiment         = "deliberation.embodiment"
	KeyAdjustmentSource   = "deliberation.adjustment_source"
	KeySynthesisMode      = "deliberation.synthesis_mode"
	KeySynthesizer        = "deliberation.synthesizer"
	KeyBallotMode         = "deliberation.ballot_mode"
	KeyMaxParallel        = "deliberation.max_parallel"
	KeyHistoryWindow      = "deliberation.history_window"
	KeyLogLevel           = "logging.level"
	KeyServerAddr         = "server.addr"
	KeyCORSOrigins        = "server.cors_origins"
	KeyRunRetention       = "server.run_retention"
)

// LoadConfig fills cfg with defaults, BOARDROOM_* environment overrides and
// the config file. explicitPath wins over the default location; a missing
// default file is not an error.
func LoadConfig(cfg *viper.Viper, explicitPath string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appDirName)
	dataDir := filepath.Join(homeDir, ".local", "share", appDirName)

	cfg.SetDefault(KeyPanelPath, filepath.Join(configDir, "panel.toml"))
	cfg.SetDefault(KeyHistoryDir, filepath.Join(dataDir, "sessions"))
	cfg.SetDefault(KeyHistoryDatabase, filepath.Join(dataDir, "history.db"))
	cfg.SetDefault(KeyHistorySinks, []string{"file", "sqlite"})
	cfg.SetDefault(KeySecretsDir, filepath.Join(dataDir, "secrets"))
	cfg.SetDefault(KeySecretsPassPrefix, "boardroom")
	cfg.SetDefault(KeyProviderKind, "openai")
	cfg.SetDefault(KeyProviderBaseURL, "https://api.openai.com/v1")
	cfg.SetDefault(KeyProviderModel, "gpt-4o")
	cfg.SetDefault(KeyProviderTemp, 0.7)
	cfg.SetDefault(KeyProviderAPIKeyRef, "boardroom://provider/api_key")
	cfg.SetDefault(KeyProviderRetries, 2)
	cfg.SetDefault(KeyMaxIterations, 3)
	cfg.SetDefault(KeyConsensusThreshold, 0.67)
	cfg.SetDefault(KeyEmbodiment, true)
	cfg.SetDefault(KeyAdjustmentSource, "embodiment")
	cfg.SetDefault(KeySynthesisMode, "joint")
	cfg.SetDefault(KeyBallotMode, "structured")
	cfg.SetDefault(KeyMaxParallel, 4)
	cfg.SetDefault(KeyHistoryWindow, 10)
	cfg.SetDefault(KeyLogLevel, "info")
	cfg.SetDefault(KeyServerAddr, "127.0.0.1:8080")
	cfg.SetDefault(KeyRunRetention, "15m")
	cfg.SetDefault(KeyCORSOrigins, []string{"http://localhost:3000"})

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetConfigType(configType)
	if explicitPath != "" {
		cfg.SetConfigFile(explicitPath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", explicitPath, err)
		}
		return nil
	}

	cfg.SetConfigName(configName)
	cfg.AddConfigPath(configDir)
	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}

	return filepath.Clean(absPath), nil
}
