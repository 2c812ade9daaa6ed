package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jacksonlee411/orgchart/modules/orgchart/infrastructure/persistence"
	"github.com/jacksonlee411/orgchart/pkg/orgview"
)

type CLI struct {
	Globals

	Show ShowCmd `cmd:"" help:"Print the org chart."`
	Find FindCmd `cmd:"" help:"List employees matching a CEL expression."`
	Run  RunCmd  `cmd:"" help:"Apply a sequence of steps (move E S, undo, redo, show, history, find EXPR) in one session."`
	Demo DemoCmd `cmd:"" help:"Move Bob Saget under Georgina Flangy on the sample chart, then undo and redo."`
}

type ShowCmd struct {
	Format string `enum:"tree,yaml" default:"tree" help:"Output format (tree|yaml)."`
}

func (c *ShowCmd) Run(g *Globals, logger *slog.Logger) error {
	s, err := openSession(context.Background(), g, logger)
	if err != nil {
		return err
	}

	root, err := s.svc.Chart(context.Background(), s.actor)
	if err != nil {
		return err
	}
	if c.Format == "yaml" {
		return persistence.EncodeHierarchyYAML(os.Stdout, root)
	}
	_, err = io.WriteString(os.Stdout, orgview.Render(root))
	return err
}

type FindCmd struct {
	Expr string `arg:"" help:"CEL expression over id, name, supervisor_id, depth, reports, headcount, is_root."`
}

func (c *FindCmd) Run(g *Globals, logger *slog.Logger) error {
	s, err := openSession(context.Background(), g, logger)
	if err != nil {
		return err
	}
	return runSteps(context.Background(), s, []step{{kind: stepFind, expr: c.Expr}}, os.Stdout)
}

type RunCmd struct {
	Steps []string `arg:"" help:"Steps, one per argument, e.g. \"move 4 15\" undo redo show."`
}

func (c *RunCmd) Run(g *Globals, logger *slog.Logger) error {
	steps, err := parseSteps(c.Steps)
	if err != nil {
		return err
	}
	s, err := openSession(context.Background(), g, logger)
	if err != nil {
		return err
	}
	return runSteps(context.Background(), s, steps, os.Stdout)
}

type DemoCmd struct{}

func (c *DemoCmd) Run(g *Globals, logger *slog.Logger) error {
	demo := *g
	demo.Source = sourceSample
	s, err := openSession(context.Background(), &demo, logger)
	if err != nil {
		return err
	}

	steps, err := parseSteps([]string{"show", "move 4 15", "show", "undo", "show", "redo", "show", "history"})
	if err != nil {
		return err
	}
	return runSteps(context.Background(), s, steps, os.Stdout)
}

func main() {
	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("orgchart"),
		kong.Description("Reorganize an org chart in memory with undo and redo."),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orgchart: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := newLogger(os.Stderr, cli.LogLevel)
	parser.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals, logger)
	ctx.FatalIfErrorf(err)
}
