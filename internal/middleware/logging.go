package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, peer, outcome and duration. Errors caused by the request
// (bad input, unknown records, used or exhausted numbers) are logged at warn
// level, everything else at error level.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"peer", req.Peer().Addr,
				"protocol", req.Peer().Protocol,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				slog.Info("RPC ok", attrs...)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && isClientError(connectErr.Code()) {
				slog.Warn("RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			} else {
				slog.Error("RPC failed", append(attrs, "code", connect.CodeOf(err), "error", err)...)
			}
			return resp, err
		}
	}
}

func isClientError(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists,
		connect.CodeFailedPrecondition, connect.CodeResourceExhausted, connect.CodeCanceled:
		return true
	}
	return false
}
