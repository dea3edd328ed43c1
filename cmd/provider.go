package cmd

import (
	"dsc/core"
	"dsc/pkg/metrics"
	"dsc/service/engine"
	"dsc/service/sandbox"
	"dsc/store/event"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideConfig() *core.Config {
	return &cfg
}

// provideDatabase nil when no dialect is configured
func provideDatabase() *db.DB {
	if cfg.DB.Dialect == "" {
		return nil
	}

	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func provideEventStore(database *db.DB) core.EventStore {
	if database == nil {
		return event.NewMemory()
	}

	return event.New(database)
}

func providePropertyStore(database *db.DB) property.Store {
	if database == nil {
		return nil
	}

	return propertystore.New(database)
}

// ------------------service------------------------------------

func provideSandbox(events core.EventStore) *sandbox.Sandbox {
	c := provideConfig()

	opts := []engine.Option{
		engine.WithEventStore(events),
		engine.WithMetrics(metrics.Engine()),
	}

	if timeout := c.Oracle.Timeout.Std(); timeout > 0 {
		opts = append(opts, engine.WithPriceTimeout(timeout))
	}

	s, err := sandbox.New(c, opts...)
	if err != nil {
		panic(err)
	}

	return s
}
