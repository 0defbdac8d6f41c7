package main

import (
	"github.com/lox/pokereval/internal/server"
)

type ServeCmd struct {
	Addr      string `short:"a" help:"Server address to bind to (overrides config)"`
	AccessLog bool   `help:"Log every HTTP request"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	e := g.evaluator(cfg)
	srv := server.NewServer(e, logger, server.WithAccessLog(cfg.Server.AccessLog || c.AccessLog))
	logger.Info("Evaluator ready", "lookup", e.Lookup())
	return srv.ListenAndServe(ctx, addr)
}
