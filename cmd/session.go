package cmd

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/config"
	"github.com/ssingla/astralyogi/internal/ephemeris"
	"github.com/ssingla/astralyogi/internal/geocode"
	"github.com/ssingla/astralyogi/internal/profile"
	"github.com/ssingla/astralyogi/internal/telemetry"
)

// session holds the collaborators shared by every chart-building command.
type session struct {
	cfg       config.Config
	logger    *zap.Logger
	events    *telemetry.Emitter
	table     *ephemeris.Table
	gazetteer *geocode.Gazetteer
	resolver  geocode.Resolver
}

// newSession loads configuration, the ephemeris table and the resolver
// chain. Callers must Close the session.
func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}
	return openSession(cfg, logger)
}

// newQuietSession is newSession with every log line discarded, for
// commands that own the terminal.
func newQuietSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return openSession(cfg, zap.NewNop())
}

// openSession wires the collaborators for cfg. Every component that logs
// is handed logger.
func openSession(cfg config.Config, logger *zap.Logger) (*session, error) {
	table, err := ephemeris.LoadTable(cfg.EphemerisPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to load ephemeris: %w", err)
	}

	var events *telemetry.Emitter
	if cfg.TelemetryPath != "" {
		events, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
	}

	gaz := geocode.DefaultGazetteer()
	var resolver geocode.Resolver = gaz
	if cfg.Geocode.Nominatim {
		resolver = geocode.Chain(gaz, geocode.NewNominatim(
			geocode.WithEndpoint(cfg.Geocode.Endpoint),
			geocode.WithUserAgent(cfg.Geocode.UserAgent),
			geocode.WithLogger(logger.Named("geocode")),
		))
	}

	logger.Debug("session ready",
		zap.String("ephemeris", cfg.EphemerisPath),
		zap.Int("moments", table.Len()),
		zap.String("frame", cfg.Frame),
		zap.Bool("nominatim", cfg.Geocode.Nominatim),
	)

	return &session{
		cfg:       cfg,
		logger:    logger,
		events:    events,
		table:     table,
		gazetteer: gaz,
		resolver:  resolver,
	}, nil
}

// newLogger builds a production logger, at debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// assembler returns a chart assembler bound to the session, with opts
// applied after the session defaults.
func (s *session) assembler(opts ...chart.Option) *chart.Assembler {
	base := []chart.Option{
		chart.WithLogger(s.logger.Named("chart")),
		chart.WithFrame(ephemeris.Frame(s.cfg.Frame)),
		chart.WithTelemetry(s.events),
	}
	return chart.New(s.table, s.resolver, append(base, opts...)...)
}

// defaults returns the profile defaults taken from configuration.
func (s *session) defaults() profile.Defaults {
	return profile.Defaults{
		TZOffset:  s.cfg.TZOffset,
		AdjustDST: s.cfg.AdjustDST,
		Divisions: s.cfg.Divisions,
	}
}

// Close flushes the logger and closes the telemetry file.
func (s *session) Close() {
	if err := s.events.Close(); err != nil {
		s.logger.Warn("closing telemetry", zap.Error(err))
	}
	_ = s.logger.Sync()
}
