package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/errors/i18n"
)

const localeKey contextKey = "locale"

// GetLocale returns the locale chosen for the request, or the base locale.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey).(string); ok {
		return locale
	}
	return i18n.BaseLocale
}

// WithLocale returns a context carrying locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleInterceptor resolves Accept-Language into a supported locale for
// error messages.
func LocaleInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			locale := i18n.ResolveLocale(req.Header().Get("Accept-Language"))
			return next(WithLocale(ctx, locale), req)
		}
	}
}
