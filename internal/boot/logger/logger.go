package logger

import (
	"github.com/x-thooh/logtree/pkg/log"
	"github.com/x-thooh/logtree/pkg/log/conf"
)

// InitLogging 日志: materializes every logger config into the node
// registry. The cleanup func closes every attached handler.
func InitLogging(cfgs []*conf.LoggerConfig) (*log.Registry, func(), error) {
	reg := log.NewRegistry()
	for _, lc := range cfgs {
		if err := lc.Attach(reg); err != nil {
			reg.Close()
			return nil, nil, err
		}
	}
	return reg, func() {
		reg.Close()
	}, nil
}
