package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/justrnr500/wildcd/internal/config"
	"github.com/justrnr500/wildcd/internal/logger"
	"github.com/justrnr500/wildcd/internal/storage"
	"github.com/justrnr500/wildcd/internal/wpath"
)

// fileSystem is what expressions resolve against.
var fileSystem wpath.FS = wpath.OSFS{}

// logOutput receives log lines.
var logOutput io.Writer = os.Stderr

// env bundles what every command needs.
type env struct {
	cfg        *config.Config
	configPath string
	log        *logger.ConsoleLogger
}

// loadEnv reads the configuration and builds the logger. Flags override
// the config file and the environment.
func loadEnv() (*env, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flagLogLevel != "" {
		if !logger.ValidLevel(flagLogLevel) {
			return nil, fmt.Errorf("invalid log level %q", flagLogLevel)
		}
		cfg.LogLevel = flagLogLevel
	}
	if flagBase != "" {
		cfg.BaseDir = flagBase
	}

	log := logger.NewConsoleLogger(logOutput, cfg.LogLevel)
	log.Debugf("config: %s", path)

	return &env{cfg: cfg, configPath: path, log: log}, nil
}

// compile expands aliases in expr and compiles it, reporting skipped
// paths through the logger.
func (e *env) compile(expr string) (*wpath.WildcardPath, error) {
	expanded, err := e.cfg.ExpandAlias(expr)
	if err != nil {
		return nil, err
	}

	opts := []wpath.Option{
		wpath.WithFS(fileSystem),
		wpath.WithWarn(e.log.SkippedPath),
		wpath.WithExclude(e.cfg.Exclude...),
	}
	if base := e.cfg.Base(); base != "" {
		opts = append(opts, wpath.WithBase(base))
	}

	w, err := wpath.Compile(expanded, opts...)
	if err != nil {
		return nil, err
	}
	e.log.Debugf("root %s, selector %v", w.Root(), w.Selector())
	return w, nil
}

// openHistory opens the history database, or returns nil when history is
// disabled.
func (e *env) openHistory() (*storage.History, error) {
	if !e.cfg.History.Enabled {
		return nil, nil
	}
	h, err := storage.OpenHistory(e.cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return h, nil
}
