package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/x-thooh/logtree/internal/config"
	"github.com/x-thooh/logtree/pkg/log"
	"github.com/x-thooh/logtree/pkg/trace"
	"github.com/x-thooh/logtree/pkg/util"
)

var (
	name = "logtree"
	env  = "prod"
	conf = "../../configs"
)

func main() {
	flag.StringVar(&env, "env", "prod", "env: dev, test, prod")
	flag.StringVar(&conf, "conf", fmt.Sprintf("../../../%s/configs", name), "path: ../../configs")
	flag.Parse()

	cfgEntity, err := config.LoadConfig(util.AbPath(conf), env)
	if err != nil {
		panic(err)
	}

	reg, fn, err := wireApp(cfgEntity)
	if err != nil {
		panic(err)
	}
	defer func() {
		fn()
	}()

	// emit a handful of records so a config can be eyeballed
	ctx := trace.Set(context.Background(), trace.GenerateTraceID())
	var root log.Logger = reg.Root()
	root.Info(ctx, "logging configured, env=%s, %d node(s)", env, len(cfgEntity.Logging))
	for _, lc := range cfgEntity.Logging {
		node := reg.Node(lc.Node)
		node.Debug(ctx, "node %q: level=%s effective=%s handlers=%d useParents=%v",
			lc.Node, lc.Level, node.EffectiveLevel(), len(node.Handlers()), lc.UseParents)
	}
	root.Warn(ctx, "sample warn record")
	root.Error(ctx, "sample error record")
}
