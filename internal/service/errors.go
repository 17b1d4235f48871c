package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/proto"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/errors/i18n"
	"github.com/mmynk/splitledger/internal/middleware"
)

// toConnectError converts a domain error into a Connect error. The message
// is the localized user text; the internal message and cause stay in logs.
func toConnectError(ctx context.Context, procedure string, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := apperrors.GetCode(err)
	metadata := apperrors.GetMetadata(err)
	locale := middleware.GetLocale(ctx)
	message := i18n.GetCatalog(locale).Format(string(code), metadata)

	switch code {
	case apperrors.CodeStorage, apperrors.CodeUnknown:
		slog.Error(procedure+" failed", "code", code, "error", err)
		metadata = nil
	default:
		slog.Debug(procedure+" rejected", "code", code, "error", err)
	}

	out := connect.NewError(code.ConnectCode(), errors.New(message))
	details := []proto.Message{
		&errdetails.ErrorInfo{
			Reason:   string(code),
			Domain:   apperrors.Domain,
			Metadata: metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: message,
		},
	}
	for _, d := range details {
		detail, derr := connect.NewErrorDetail(d)
		if derr != nil {
			slog.Warn("Failed to attach error detail", "error", derr)
			continue
		}
		out.AddDetail(detail)
	}
	return out
}

// requireUser returns the authenticated caller.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}
	return userID, nil
}
