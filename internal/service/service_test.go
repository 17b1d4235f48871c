package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/debts"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
)

type testClients struct {
	expenses *api.ExpenseServiceClient
	shares   *api.ShareServiceClient
	debts    *api.DebtServiceClient
	groups   *api.GroupServiceClient
	tokens   map[string]string
}

// setupTestServer serves every service over httptest with the production
// interceptor chain.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	interceptors := connect.WithInterceptors(
		middleware.LocaleInterceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	// A frozen clock puts every expense in the same created_at second.
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l := ledger.New(store, store, ledger.WithClock(func() time.Time { return now }))
	mux := http.NewServeMux()
	mux.Handle(api.NewExpenseServiceHandler(NewExpenseService(l), interceptors))
	mux.Handle(api.NewShareServiceHandler(NewShareService(l), interceptors))
	mux.Handle(api.NewDebtServiceHandler(NewDebtService(debts.NewAggregator(store, store)), interceptors))
	mux.Handle(api.NewGroupServiceHandler(NewGroupService(store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := map[string]string{}
	for _, user := range []string{"alice", "bob", "carol", "mallory"} {
		token, err := jwtManager.Generate(user, user+"@example.com")
		if err != nil {
			t.Fatalf("failed to mint token: %v", err)
		}
		tokens[user] = token
	}

	return &testClients{
		expenses: api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		shares:   api.NewShareServiceClient(http.DefaultClient, server.URL),
		debts:    api.NewDebtServiceClient(http.DefaultClient, server.URL),
		groups:   api.NewGroupServiceClient(http.DefaultClient, server.URL),
		tokens:   tokens,
	}
}

// as builds a request authenticated as user.
func as[T any](c *testClients, user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+c.tokens[user])
	return req
}

func (c *testClients) createGroup(t *testing.T, owner string, members ...string) string {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), as(c, owner, &api.CreateGroupRequest{
		Name:    "Roommates",
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group.ID
}

func (c *testClients) createExpense(t *testing.T, user, groupID, amount string) *api.CreateExpenseResponse {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), as(c, user, &api.CreateExpenseRequest{
		GroupID:  groupID,
		Name:     "Groceries",
		Date:     "2026-03-14",
		Amount:   amount,
		Currency: "rub",
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg
}

func wantConnectCode(t *testing.T, err error, want connect.Code, reason string) *connect.Error {
	t.Helper()
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T (%v)", err, err)
	}
	if connectErr.Code() != want {
		t.Fatalf("code = %v, want %v (%s)", connectErr.Code(), want, connectErr.Message())
	}
	if reason != "" {
		if got := errorInfo(t, connectErr); got == nil || got.GetReason() != reason {
			t.Fatalf("ErrorInfo = %v, want reason %s", got, reason)
		}
	}
	return connectErr
}

func errorInfo(t *testing.T, err *connect.Error) *errdetails.ErrorInfo {
	t.Helper()
	for _, d := range err.Details() {
		msg, derr := d.Value()
		if derr != nil {
			t.Fatalf("failed to decode detail: %v", derr)
		}
		if info, ok := msg.(*errdetails.ErrorInfo); ok {
			return info
		}
	}
	return nil
}

func TestUnauthenticated(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.expenses.ListExpenses(context.Background(), connect.NewRequest(&api.ListExpensesRequest{GroupID: "g"}))
	wantConnectCode(t, err, connect.CodeUnauthenticated, "")

	_, err = c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{}))
	wantConnectCode(t, err, connect.CodeUnauthenticated, "")
}
