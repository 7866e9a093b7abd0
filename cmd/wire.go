package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/boardroom/internal/adapters/history"
	historyfile "github.com/bnema/boardroom/internal/adapters/history/file"
	"github.com/bnema/boardroom/internal/adapters/history/sqlitedb"
	"github.com/bnema/boardroom/internal/adapters/judgment/offline"
	"github.com/bnema/boardroom/internal/adapters/judgment/openai"
	"github.com/bnema/boardroom/internal/adapters/observability"
	reportadapter "github.com/bnema/boardroom/internal/adapters/render/report"
	tomlrepo "github.com/bnema/boardroom/internal/adapters/repo/toml"
	chainstore "github.com/bnema/boardroom/internal/adapters/secrets/chain"
	"github.com/bnema/boardroom/internal/application"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	providerOpenAI  = "openai"
	providerOffline = "offline"

	sinkFile   = "file"
	sinkSQLite = "sqlite"
	sinkNone   = "none"

	openAIKeyEnv = "OPENAI_API_KEY"
	dataDirMode  = 0o700
)

type app struct {
	config   *viper.Viper
	logger   zerolog.Logger
	panel    *tomlrepo.PanelRepository
	secrets  *chainstore.Store
	deps     application.ServiceDeps
	settings application.Config
	service  *application.Service

	renderReport   func(domain.FinalReport, reportadapter.Options) (string, error)
	renderSessions func([]domain.SessionSummary, reportadapter.Options) (string, error)
	renderStats    func(domain.Stats) (string, error)
	now            func() time.Time

	closers []func() error
}

type wireOptions struct {
	configPath string
	logLevel   string
	logOutput  io.Writer
}

func (a *app) wire(ctx context.Context, opts wireOptions) error {
	config := viper.New()
	if err := tomlrepo.LoadConfig(config, opts.configPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := config.GetString(tomlrepo.KeyLogLevel)
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, err := observability.NewLogger(opts.logOutput, level)
	if err != nil {
		return err
	}

	panel, err := tomlrepo.NewPanelRepository(config)
	if err != nil {
		return fmt.Errorf("wire panel repository: %w", err)
	}

	apiKeyRef := config.GetString(tomlrepo.KeyProviderAPIKeyRef)
	secretStore, err := chainstore.NewDefault(chainstore.DefaultOptions{
		FileRoot:   config.GetString(tomlrepo.KeySecretsDir),
		PassPrefix: config.GetString(tomlrepo.KeySecretsPassPrefix),
		Aliases:    map[string][]string{apiKeyRef: {openAIKeyEnv}},
	})
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	a.config = config
	a.logger = logger
	a.panel = panel
	a.secrets = secretStore
	a.settings = deliberationConfig(config)
	a.renderReport = reportadapter.Render
	a.renderSessions = reportadapter.RenderSessions
	a.renderStats = reportadapter.RenderStats
	a.now = time.Now

	provider, err := a.provider(ctx, config.GetString(tomlrepo.KeyProviderKind))
	if err != nil {
		return err
	}

	sink, sessions, err := a.history(ctx, config)
	if err != nil {
		return err
	}

	a.deps = application.ServiceDeps{
		Panel:    panel,
		Provider: provider,
		Sink:     sink,
		Sessions: sessions,
		Clock:    ports.SystemClock{},
		Logger:   logger,
		Observer: observability.RunMetrics(),

		RunRetention: config.GetDuration(tomlrepo.KeyRunRetention),
	}
	a.service = application.NewService(a.deps, a.settings)

	logger.Debug().
		Str("provider", config.GetString(tomlrepo.KeyProviderKind)).
		Strs("history", config.GetStringSlice(tomlrepo.KeyHistorySinks)).
		Str("panel", panel.Path()).
		Msg("boardroom wired")
	return nil
}

// offlineService swaps the configured provider for the local one and keeps
// everything else.
func (a *app) offlineService(ctx context.Context) (*application.Service, error) {
	provider, err := a.provider(ctx, providerOffline)
	if err != nil {
		return nil, err
	}

	deps := a.deps
	deps.Provider = provider
	return application.NewService(deps, a.settings), nil
}

func (a *app) provider(ctx context.Context, kind string) (ports.JudgmentProvider, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case providerOpenAI, "":
		client, err := openai.NewClient(openai.Config{
			BaseURL:     a.config.GetString(tomlrepo.KeyProviderBaseURL),
			Model:       a.config.GetString(tomlrepo.KeyProviderModel),
			Temperature: a.config.GetFloat64(tomlrepo.KeyProviderTemp),
			APIKeyRef:   a.config.GetString(tomlrepo.KeyProviderAPIKeyRef),
			MaxRetries:  a.config.GetInt(tomlrepo.KeyProviderRetries),
		}, a.secrets, &http.Client{})
		if err != nil {
			return nil, fmt.Errorf("wire openai provider: %w", err)
		}
		return client, nil
	case providerOffline:
		participants, err := a.panel.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load panel: %w", err)
		}
		var favorite domain.ParticipantName
		if len(participants) > 0 {
			favorite = participants[0].Name
		}
		return offline.NewProvider(favorite), nil
	default:
		return nil, &domain.ConfigurationError{Field: tomlrepo.KeyProviderKind, Reason: fmt.Sprintf("unsupported provider %q", kind)}
	}
}

// history builds the sink from history.sinks. Sessions are read back from
// sqlite when it is enabled and from the session folders otherwise.
func (a *app) history(ctx context.Context, config *viper.Viper) (ports.HistorySink, ports.SessionRepository, error) {
	var (
		sinks    []history.NamedSink
		sessions ports.SessionRepository
		folders  ports.SessionRepository
	)

	for _, name := range config.GetStringSlice(tomlrepo.KeyHistorySinks) {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case sinkFile:
			sink := historyfile.NewSink(config.GetString(tomlrepo.KeyHistoryDir))
			sinks = append(sinks, history.NamedSink{Name: sinkFile, Sink: sink})
			folders = sink
		case sinkSQLite:
			path := config.GetString(tomlrepo.KeyHistoryDatabase)
			if err := os.MkdirAll(filepath.Dir(path), dataDirMode); err != nil {
				return nil, nil, fmt.Errorf("create history database directory: %w", err)
			}
			store, err := sqlitedb.Open(ctx, sqlitedb.Config{Path: path, Logger: a.logger})
			if err != nil {
				return nil, nil, err
			}
			a.closers = append(a.closers, store.Close)
			sinks = append(sinks, history.NamedSink{Name: sinkSQLite, Sink: store})
			sessions = store
		case sinkNone, "":
		default:
			return nil, nil, &domain.ConfigurationError{Field: tomlrepo.KeyHistorySinks, Reason: fmt.Sprintf("unsupported history sink %q", name)}
		}
	}

	if sessions == nil {
		sessions = folders
	}
	if len(sinks) == 0 {
		return nil, nil, nil
	}
	return history.NewTee(sinks...), sessions, nil
}

func (a *app) close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func deliberationConfig(config *viper.Viper) application.Config {
	return application.Config{
		MaxIterations:      config.GetInt(tomlrepo.KeyMaxIterations),
		ConsensusThreshold: config.GetFloat64(tomlrepo.KeyConsensusThreshold),
		EmbodimentEnabled:  config.GetBool(tomlrepo.KeyEmbodiment),
		AdjustmentSource:   application.AdjustmentSource(config.GetString(tomlrepo.KeyAdjustmentSource)),
		SynthesisMode:      application.SynthesisMode(config.GetString(tomlrepo.KeySynthesisMode)),
		Synthesizer:        domain.ParticipantName(config.GetString(tomlrepo.KeySynthesizer)),
		BallotMode:         application.BallotMode(config.GetString(tomlrepo.KeyBallotMode)),
		MaxParallel:        config.GetInt(tomlrepo.KeyMaxParallel),
		HistoryWindow:      config.GetInt(tomlrepo.KeyHistoryWindow),
	}
}
