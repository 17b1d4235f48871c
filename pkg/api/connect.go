package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	ExpenseServiceName = "splitledger.v1.ExpenseService"
	ShareServiceName   = "splitledger.v1.ShareService"
	DebtServiceName    = "splitledger.v1.DebtService"
	GroupServiceName   = "splitledger.v1.GroupService"
)

// Fully-qualified procedure names, usable as HTTP paths.
const (
	ExpenseServiceCreateExpenseProcedure = "/splitledger.v1.ExpenseService/CreateExpense"
	ExpenseServiceListExpensesProcedure  = "/splitledger.v1.ExpenseService/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure = "/splitledger.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/splitledger.v1.ExpenseService/DeleteExpense"

	ShareServiceGetExpenseSharesProcedure  = "/splitledger.v1.ShareService/GetExpenseShares"
	ShareServiceReplaceSharesProcedure     = "/splitledger.v1.ShareService/ReplaceShares"
	ShareServiceUpdatePaidAmountProcedure  = "/splitledger.v1.ShareService/UpdatePaidAmount"
	ShareServiceRemoveParticipantProcedure = "/splitledger.v1.ShareService/RemoveParticipant"

	DebtServiceGetDebtSummaryProcedure      = "/splitledger.v1.DebtService/GetDebtSummary"
	DebtServiceGetGroupDebtSummaryProcedure = "/splitledger.v1.DebtService/GetGroupDebtSummary"

	GroupServiceCreateGroupProcedure = "/splitledger.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure    = "/splitledger.v1.GroupService/GetGroup"
	GroupServiceAddMembersProcedure  = "/splitledger.v1.GroupService/AddMembers"
	GroupServiceCloseGroupProcedure  = "/splitledger.v1.GroupService/CloseGroup"
)

// ExpenseServiceHandler is implemented by the server side of splitledger.v1.ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// ShareServiceHandler is implemented by the server side of splitledger.v1.ShareService.
type ShareServiceHandler interface {
	GetExpenseShares(context.Context, *connect.Request[GetExpenseSharesRequest]) (*connect.Response[GetExpenseSharesResponse], error)
	ReplaceShares(context.Context, *connect.Request[ReplaceSharesRequest]) (*connect.Response[ReplaceSharesResponse], error)
	UpdatePaidAmount(context.Context, *connect.Request[UpdatePaidAmountRequest]) (*connect.Response[UpdatePaidAmountResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
}

// DebtServiceHandler is implemented by the server side of splitledger.v1.DebtService.
type DebtServiceHandler interface {
	GetDebtSummary(context.Context, *connect.Request[GetDebtSummaryRequest]) (*connect.Response[GetDebtSummaryResponse], error)
	GetGroupDebtSummary(context.Context, *connect.Request[GetGroupDebtSummaryRequest]) (*connect.Response[GetGroupDebtSummaryResponse], error)
}

// GroupServiceHandler is implemented by the server side of splitledger.v1.GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	AddMembers(context.Context, *connect.Request[AddMembersRequest]) (*connect.Response[AddMembersResponse], error)
	CloseGroup(context.Context, *connect.Request[CloseGroupRequest]) (*connect.Response[CloseGroupResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(Codec{})))
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceUpdateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// NewShareServiceHandler builds an HTTP handler for splitledger.v1.ShareService.
func NewShareServiceHandler(svc ShareServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(Codec{})))
	mux := http.NewServeMux()
	mux.Handle(ShareServiceGetExpenseSharesProcedure, connect.NewUnaryHandler(ShareServiceGetExpenseSharesProcedure, svc.GetExpenseShares, opts...))
	mux.Handle(ShareServiceReplaceSharesProcedure, connect.NewUnaryHandler(ShareServiceReplaceSharesProcedure, svc.ReplaceShares, opts...))
	mux.Handle(ShareServiceUpdatePaidAmountProcedure, connect.NewUnaryHandler(ShareServiceUpdatePaidAmountProcedure, svc.UpdatePaidAmount, opts...))
	mux.Handle(ShareServiceRemoveParticipantProcedure, connect.NewUnaryHandler(ShareServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...))
	return "/" + ShareServiceName + "/", mux
}

// NewDebtServiceHandler builds an HTTP handler for splitledger.v1.DebtService.
func NewDebtServiceHandler(svc DebtServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(Codec{})))
	mux := http.NewServeMux()
	mux.Handle(DebtServiceGetDebtSummaryProcedure, connect.NewUnaryHandler(DebtServiceGetDebtSummaryProcedure, svc.GetDebtSummary, opts...))
	mux.Handle(DebtServiceGetGroupDebtSummaryProcedure, connect.NewUnaryHandler(DebtServiceGetGroupDebtSummaryProcedure, svc.GetGroupDebtSummary, opts...))
	return "/" + DebtServiceName + "/", mux
}

// NewGroupServiceHandler builds an HTTP handler for splitledger.v1.GroupService.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(Codec{})))
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceAddMembersProcedure, connect.NewUnaryHandler(GroupServiceAddMembersProcedure, svc.AddMembers, opts...))
	mux.Handle(GroupServiceCloseGroupProcedure, connect.NewUnaryHandler(GroupServiceCloseGroupProcedure, svc.CloseGroup, opts...))
	return "/" + GroupServiceName + "/", mux
}

// ExpenseServiceClient is a client for splitledger.v1.ExpenseService.
type ExpenseServiceClient struct {
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
}

// NewExpenseServiceClient constructs a client for splitledger.v1.ExpenseService.
// baseURL is the scheme and host of the server, e.g. http://localhost:8080.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(Codec{})))
	return &ExpenseServiceClient{
		createExpense: connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		updateExpense: connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// ShareServiceClient is a client for splitledger.v1.ShareService.
type ShareServiceClient struct {
	getExpenseShares  *connect.Client[GetExpenseSharesRequest, GetExpenseSharesResponse]
	replaceShares     *connect.Client[ReplaceSharesRequest, ReplaceSharesResponse]
	updatePaidAmount  *connect.Client[UpdatePaidAmountRequest, UpdatePaidAmountResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
}

// NewShareServiceClient constructs a client for splitledger.v1.ShareService.
func NewShareServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ShareServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(Codec{})))
	return &ShareServiceClient{
		getExpenseShares:  connect.NewClient[GetExpenseSharesRequest, GetExpenseSharesResponse](httpClient, baseURL+ShareServiceGetExpenseSharesProcedure, opts...),
		replaceShares:     connect.NewClient[ReplaceSharesRequest, ReplaceSharesResponse](httpClient, baseURL+ShareServiceReplaceSharesProcedure, opts...),
		updatePaidAmount:  connect.NewClient[UpdatePaidAmountRequest, UpdatePaidAmountResponse](httpClient, baseURL+ShareServiceUpdatePaidAmountProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+ShareServiceRemoveParticipantProcedure, opts...),
	}
}

func (c *ShareServiceClient) GetExpenseShares(ctx context.Context, req *connect.Request[GetExpenseSharesRequest]) (*connect.Response[GetExpenseSharesResponse], error) {
	return c.getExpenseShares.CallUnary(ctx, req)
}

func (c *ShareServiceClient) ReplaceShares(ctx context.Context, req *connect.Request[ReplaceSharesRequest]) (*connect.Response[ReplaceSharesResponse], error) {
	return c.replaceShares.CallUnary(ctx, req)
}

func (c *ShareServiceClient) UpdatePaidAmount(ctx context.Context, req *connect.Request[UpdatePaidAmountRequest]) (*connect.Response[UpdatePaidAmountResponse], error) {
	return c.updatePaidAmount.CallUnary(ctx, req)
}

func (c *ShareServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

// DebtServiceClient is a client for splitledger.v1.DebtService.
type DebtServiceClient struct {
	getDebtSummary      *connect.Client[GetDebtSummaryRequest, GetDebtSummaryResponse]
	getGroupDebtSummary *connect.Client[GetGroupDebtSummaryRequest, GetGroupDebtSummaryResponse]
}

// NewDebtServiceClient constructs a client for splitledger.v1.DebtService.
func NewDebtServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DebtServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(Codec{})))
	return &DebtServiceClient{
		getDebtSummary:      connect.NewClient[GetDebtSummaryRequest, GetDebtSummaryResponse](httpClient, baseURL+DebtServiceGetDebtSummaryProcedure, opts...),
		getGroupDebtSummary: connect.NewClient[GetGroupDebtSummaryRequest, GetGroupDebtSummaryResponse](httpClient, baseURL+DebtServiceGetGroupDebtSummaryProcedure, opts...),
	}
}

func (c *DebtServiceClient) GetDebtSummary(ctx context.Context, req *connect.Request[GetDebtSummaryRequest]) (*connect.Response[GetDebtSummaryResponse], error) {
	return c.getDebtSummary.CallUnary(ctx, req)
}

func (c *DebtServiceClient) GetGroupDebtSummary(ctx context.Context, req *connect.Request[GetGroupDebtSummaryRequest]) (*connect.Response[GetGroupDebtSummaryResponse], error) {
	return c.getGroupDebtSummary.CallUnary(ctx, req)
}

// GroupServiceClient is a client for splitledger.v1.GroupService.
type GroupServiceClient struct {
	createGroup *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup    *connect.Client[GetGroupRequest, GetGroupResponse]
	addMembers  *connect.Client[AddMembersRequest, AddMembersResponse]
	closeGroup  *connect.Client[CloseGroupRequest, CloseGroupResponse]
}

// NewGroupServiceClient constructs a client for splitledger.v1.GroupService.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(Codec{})))
	return &GroupServiceClient{
		createGroup: connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:    connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		addMembers:  connect.NewClient[AddMembersRequest, AddMembersResponse](httpClient, baseURL+GroupServiceAddMembersProcedure, opts...),
		closeGroup:  connect.NewClient[CloseGroupRequest, CloseGroupResponse](httpClient, baseURL+GroupServiceCloseGroupProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMembers(ctx context.Context, req *connect.Request[AddMembersRequest]) (*connect.Response[AddMembersResponse], error) {
	return c.addMembers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) CloseGroup(ctx context.Context, req *connect.Request[CloseGroupRequest]) (*connect.Response[CloseGroupResponse], error) {
	return c.closeGroup.CallUnary(ctx, req)
}
