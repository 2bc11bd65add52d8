package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clubboard/internal/otel"
)

// toolMetricsMiddleware records the outcome of every tools/call.
func toolMetricsMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}

			name := ""
			if params, ok := safeParams(req).(*sdkmcp.CallToolParamsRaw); ok && params != nil {
				name = params.Name
			}

			result, err := next(ctx, method, req)
			outcome := otel.OutcomeOK
			if res, ok := result.(*sdkmcp.CallToolResult); err != nil || (ok && res != nil && res.IsError) {
				outcome = otel.OutcomeError
			}
			otel.RecordToolCall(ctx, name, outcome)
			return result, err
		}
	}
}
