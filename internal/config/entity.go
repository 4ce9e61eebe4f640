package config

import (
	"github.com/x-thooh/logtree/pkg/log/conf"
)

type Entity struct {
	*Base
	Logging []*conf.LoggerConfig `yaml:"logging"`
}

type Base struct {
	Env string `yaml:"env"`
}

func RegisterLogging(entity *Entity) []*conf.LoggerConfig {
	return entity.Logging
}
