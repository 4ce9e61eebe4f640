package trace

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// 定义 traceID key（Record 的 TraceID 字段来源）
const traceIDCtxKey = "trace_id"

func GetCtxKey() string {
	return traceIDCtxKey
}

func GenerateTraceID() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)
}

func Set(ctx context.Context, traceId string) context.Context {
	return context.WithValue(ctx, GetCtxKey(), traceId)
}

func Get(ctx context.Context) string {
	tid := ctx.Value(GetCtxKey())
	switch v := tid.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	}
	return ""
}
