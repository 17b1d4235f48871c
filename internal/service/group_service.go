package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"connectrpc.com/connect"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/membership"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

const maxGroupNameLen = 100

// Directory is the writable side of the membership directory.
type Directory interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	AddMembers(ctx context.Context, groupID string, userIDs []string) error
	CloseGroup(ctx context.Context, groupID string) error
}

// GroupService implements the Connect GroupService. It administers the
// bundled membership directory.
type GroupService struct {
	directory Directory
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given directory.
func NewGroupService(directory Directory) *GroupService {
	return &GroupService{directory: directory}
}

// CreateGroup creates a group owned by the caller, who becomes its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
		"user_id", userID,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" || utf8.RuneCountInString(name) > maxGroupNameLen {
		return nil, toConnectError(ctx, "CreateGroup",
			apperrors.InvalidArgument("name", "must be between 1 and 100 characters"))
	}

	group := &models.Group{
		Name:    name,
		OwnerID: userID,
		Members: memberList(userID, req.Msg.Members),
	}
	if err := s.directory.CreateGroup(ctx, group); err != nil {
		return nil, toConnectError(ctx, "CreateGroup", apperrors.Storage("create group", err))
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup returns a group to one of its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.load(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, "GetGroup", err)
	}
	if !group.HasMember(userID) {
		return nil, toConnectError(ctx, "GetGroup",
			apperrors.New(apperrors.CodeNotMember, userID+" is not a member of group "+group.ID))
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// AddMembers appends users to an open group. Only the owner may add members.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	group, err := s.ownedGroup(ctx, req.Msg.GroupID, "add members")
	if err != nil {
		return nil, toConnectError(ctx, "AddMembers", err)
	}
	if group.Closed {
		return nil, toConnectError(ctx, "AddMembers",
			apperrors.New(apperrors.CodeGroupClosed, "group "+group.ID+" is closed"))
	}

	var members []string
	for _, m := range req.Msg.Members {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return nil, toConnectError(ctx, "AddMembers", apperrors.InvalidArgument("members", "must not be empty"))
	}

	if err := s.directory.AddMembers(ctx, group.ID, members); err != nil {
		return nil, toConnectError(ctx, "AddMembers", directoryErr(group.ID, err))
	}
	slog.Info("Members added", "group_id", group.ID, "members", members)

	group, err = s.load(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(ctx, "AddMembers", err)
	}
	return connect.NewResponse(&api.AddMembersResponse{Group: toAPIGroup(group)}), nil
}

// CloseGroup stops a group from accepting expense changes. Only the owner may close it.
func (s *GroupService) CloseGroup(ctx context.Context, req *connect.Request[api.CloseGroupRequest]) (*connect.Response[api.CloseGroupResponse], error) {
	group, err := s.ownedGroup(ctx, req.Msg.GroupID, "close the group")
	if err != nil {
		return nil, toConnectError(ctx, "CloseGroup", err)
	}

	if err := s.directory.CloseGroup(ctx, group.ID); err != nil {
		return nil, toConnectError(ctx, "CloseGroup", directoryErr(group.ID, err))
	}
	group.Closed = true

	slog.Info("Group closed", "group_id", group.ID)
	return connect.NewResponse(&api.CloseGroupResponse{Group: toAPIGroup(group)}), nil
}

func (s *GroupService) load(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.directory.GetGroup(ctx, groupID)
	if err != nil {
		return nil, directoryErr(groupID, err)
	}
	return group, nil
}

// ownedGroup loads a group and checks that the caller owns it.
func (s *GroupService) ownedGroup(ctx context.Context, groupID, action string) (*models.Group, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, apperrors.WithMetadata(apperrors.CodeForbidden, "not allowed to "+action,
			map[string]string{"Action": action})
	}
	return group, nil
}

func directoryErr(groupID string, err error) error {
	if errors.Is(err, membership.ErrGroupNotFound) {
		return apperrors.WithMetadata(apperrors.CodeNotFound, "group "+groupID+" not found",
			map[string]string{"Resource": "Group"})
	}
	return apperrors.Storage("group directory", err)
}

// memberList puts owner first and drops blanks and repeats.
func memberList(owner string, others []string) []string {
	members := []string{owner}
	seen := map[string]bool{owner: true}
	for _, m := range others {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		members = append(members, m)
	}
	return members
}
