// Package logger holds the process-wide Zap logger shared by the API
// server and the data-entry CLI.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger once. "production" gets Zap's JSON
// encoder; anything else gets the console encoder for local runs.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development
// one when Init was never called (tests, CLI subcommands).
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; deferred from main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
