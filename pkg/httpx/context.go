package httpx

import (
	"context"

	"github.com/delveng/signup/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyDeviceID ctxKey = "device_id"
	CtxKeyFlowID   ctxKey = "flow_id"
	CtxKeyClaims   ctxKey = "claims"
)

func contextWithFlow(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyDeviceID, c.DeviceID())
	ctx = context.WithValue(ctx, CtxKeyFlowID, c.FlowID())
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// DeviceIDFromContext returns the authenticated device id, or "".
func DeviceIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyDeviceID).(string)
	return v
}

// FlowIDFromContext returns the authenticated flow id, or "".
func FlowIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyFlowID).(string)
	return v
}

// ClaimsFromContext returns the verified flow handle claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
