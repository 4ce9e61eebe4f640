//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"
	"github.com/x-thooh/logtree/internal/boot/logger"
	"github.com/x-thooh/logtree/internal/config"
	"github.com/x-thooh/logtree/pkg/log"
)

// wireApp init logging registry.
func wireApp(*config.Entity) (*log.Registry, func(), error) {
	panic(wire.Build(
		config.ProviderSetConfig,
		logger.InitLogging,
	))
}
