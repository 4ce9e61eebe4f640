package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x-thooh/logtree/pkg/log"
	"github.com/x-thooh/logtree/pkg/log/conf"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata", "test")
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Env)
	require.Len(t, cfg.Logging, 3)

	root := cfg.Logging[0]
	require.Equal(t, "", root.Node)
	require.Equal(t, log.LevelInfo, root.Level)
	require.True(t, root.UseParents)

	file, ok := root.Handlers[0].(*conf.FileHandlerConfig)
	require.True(t, ok)
	require.Equal(t, "/var/log/app/app.log", file.Filename)
	require.True(t, file.Append, "append defaults to true")
	require.Equal(t, 10, file.RotateCount)
	require.Equal(t, 64, file.Roll.MaxSizeMB)
	require.True(t, file.Roll.Compress)
	require.Equal(t, conf.KindBasic, file.Formatter.Kind)

	ship := cfg.Logging[1]
	require.Equal(t, log.LevelInherit, ship.Level, "absent level stays inherit")
	require.False(t, ship.UseParents)

	th, ok := ship.Handlers[0].(*conf.ThrottledHandlerConfig)
	require.True(t, ok)
	require.Equal(t, 30000, th.DurationMs)
	sc, ok := th.Handler.(*conf.ScribeHandlerConfig)
	require.True(t, ok)
	require.Equal(t, "scribe.internal", sc.Hostname)
	require.Equal(t, 1464, sc.Port)
	require.Equal(t, "audit", sc.Category)
	require.Equal(t, conf.KindBare, sc.Formatter.Kind)

	pool := cfg.Logging[2]
	require.Equal(t, log.LevelDebug, pool.Level)
	console, ok := pool.Handlers[0].(*conf.ConsoleHandlerConfig)
	require.True(t, ok)
	require.Equal(t, conf.KindCustom, console.Formatter.Kind)
	require.True(t, console.Formatter.UseFullNodeNames)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("testdata", "nope")
	require.Error(t, err)
}

func TestRegisterLogging(t *testing.T) {
	cfg, err := LoadConfig("testdata", "test")
	require.NoError(t, err)
	require.Equal(t, cfg.Logging, RegisterLogging(cfg))
}
