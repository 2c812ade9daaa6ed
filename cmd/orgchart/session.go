package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/ports"
	"github.com/jacksonlee411/orgchart/modules/orgchart/infrastructure/persistence"
	"github.com/jacksonlee411/orgchart/modules/orgchart/services"
	"github.com/jacksonlee411/orgchart/pkg/authz"
)

const (
	sourceAuto     = ""
	sourceSample   = "sample"
	sourceYAML     = "yaml"
	sourcePostgres = "postgres"
)

type Globals struct {
	Source      string `env:"ORGCHART_SOURCE" help:"Where the initial chart comes from (sample|yaml|postgres). Defaults to yaml when --seed is set, sample otherwise."`
	Seed        string `type:"path" env:"ORGCHART_SEED" help:"YAML chart file."`
	DatabaseURL string `env:"DATABASE_URL" help:"PostgreSQL DSN; DB_* variables are used when empty."`
	Role        string `default:"hr-admin" env:"ORGCHART_ROLE" help:"Role used for access checks."`
	Actor       string `default:"cli" env:"ORGCHART_ACTOR" help:"Actor id recorded in logs."`
	MaxHistory  int    `default:"1000" env:"ORGCHART_MAX_HISTORY" help:"Snapshots retained for undo."`
	LogLevel    string `default:"info" env:"ORGCHART_LOG_LEVEL" help:"debug|info|warn|error."`
	AuthzMode   string `env:"AUTHZ_MODE" help:"enforce|shadow|disabled."`
	AuthzModel  string `env:"AUTHZ_MODEL_PATH" help:"Casbin model file; built-in model when empty."`
	AuthzPolicy string `env:"AUTHZ_POLICY_PATH" help:"Casbin policy file; built-in policy when empty."`
}

type session struct {
	svc    services.OrgChartService
	engine *services.Engine
	actor  services.Actor
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func openSession(ctx context.Context, g *Globals, logger *slog.Logger) (*session, error) {
	mode, err := authz.ParseMode(g.AuthzMode)
	if err != nil {
		return nil, err
	}
	az, err := newAuthorizer(g, mode)
	if err != nil {
		return nil, err
	}

	src, closeSrc, err := openSource(ctx, g)
	if err != nil {
		return nil, err
	}
	root, err := src.LoadHierarchy(ctx)
	if err != nil {
		closeSrc()
		return nil, err
	}
	closeSrc()

	engine, err := services.NewEngine(root, services.WithMaxHistory(g.MaxHistory))
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "session opened", "source", g.Source, "headcount", engine.Headcount(), "authz_mode", mode)

	return &session{
		svc:    services.NewOrgChartService(engine, az, logger),
		engine: engine,
		actor:  services.Actor{ID: g.Actor, Role: g.Role},
	}, nil
}

func newAuthorizer(g *Globals, mode authz.Mode) (*authz.Authorizer, error) {
	if g.AuthzModel != "" || g.AuthzPolicy != "" {
		if g.AuthzModel == "" || g.AuthzPolicy == "" {
			return nil, errors.New("authz: both AUTHZ_MODEL_PATH and AUTHZ_POLICY_PATH are required")
		}
		return authz.NewAuthorizer(g.AuthzModel, g.AuthzPolicy, mode)
	}
	return authz.NewDefaultAuthorizer(mode)
}

func openSource(ctx context.Context, g *Globals) (ports.HierarchySource, func(), error) {
	noop := func() {}
	source := g.Source
	if source == sourceAuto {
		source = sourceSample
		if g.Seed != "" {
			source = sourceYAML
		}
	}

	switch source {
	case sourceSample:
		return sampleSource{}, noop, nil
	case sourceYAML:
		if g.Seed == "" {
			return nil, noop, fmt.Errorf("--seed is required for source %q", sourceYAML)
		}
		return persistence.NewEmployeeYAMLSource(g.Seed), noop, nil
	case sourcePostgres:
		dsn := g.DatabaseURL
		if dsn == "" {
			dsn = persistence.DSNFromEnv()
		}
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, noop, err
		}
		return persistence.NewEmployeePGSource(pool), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown source %q", source)
	}
}
