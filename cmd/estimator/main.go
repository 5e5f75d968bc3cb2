package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estimator/internal/clock"
	"github.com/smallbiznis/estimator/internal/config"
	"github.com/smallbiznis/estimator/internal/lock"
	"github.com/smallbiznis/estimator/internal/migration"
	"github.com/smallbiznis/estimator/internal/observability"
	"github.com/smallbiznis/estimator/internal/server"
	"github.com/smallbiznis/estimator/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		lock.Module,

		// Schema and demo catalog before the server starts accepting requests.
		migration.Module,

		// Catalog, pricing, validation and estimate domains plus HTTP routes.
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
