package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, caller, result code and duration. Server-side
// failures log at error level, rejected requests at warn.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			userID := GetUserID(ctx) // empty if pre-auth

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err == nil {
				slog.Info("RPC ok",
					"procedure", procedure,
					"user_id", userID,
					"duration_ms", duration,
				)
				return resp, nil
			}

			level := slog.LevelWarn
			switch connect.CodeOf(err) {
			case connect.CodeInternal, connect.CodeUnavailable, connect.CodeUnknown, connect.CodeDataLoss:
				level = slog.LevelError
			}
			slog.Log(ctx, level, "RPC error",
				"procedure", procedure,
				"code", connect.CodeOf(err),
				"error", err,
				"user_id", userID,
				"duration_ms", duration,
			)
			return resp, err
		}
	}
}
