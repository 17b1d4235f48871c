package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/membership"
	"github.com/mmynk/splitledger/internal/models"
)

// CreateGroup inserts a group and its members in the given order.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.q(ctx).ExecContext(ctx,
			`INSERT INTO groups (id, name, owner_id, closed, created_at) VALUES (?, ?, ?, ?, ?)`,
			group.ID, group.Name, group.OwnerID, group.Closed, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		return s.insertMembers(ctx, group.ID, group.Members)
	})
}

// GetGroup retrieves a group with its ordered member list.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, name, owner_id, closed, created_at FROM groups WHERE id = ?`,
		groupID,
	).Scan(&group.ID, &group.Name, &group.OwnerID, &group.Closed, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, membership.ErrGroupNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.listMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// AddMembers appends users to the end of the member list.
// Users that already belong to the group keep their position.
func (s *SQLiteStore) AddMembers(ctx context.Context, groupID string, userIDs []string) error {
	return s.WithTx(ctx, func(ctx context.Context) error {
		if err := s.requireGroup(ctx, groupID); err != nil {
			return err
		}
		return s.insertMembers(ctx, groupID, userIDs)
	})
}

// CloseGroup marks a group closed. Closing twice is not an error.
func (s *SQLiteStore) CloseGroup(ctx context.Context, groupID string) error {
	result, err := s.q(ctx).ExecContext(ctx, "UPDATE groups SET closed = 1 WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to close group: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", groupID, membership.ErrGroupNotFound)
	}
	return nil
}

// Members returns the ordered member list of a group.
func (s *SQLiteStore) Members(ctx context.Context, groupID string) ([]string, error) {
	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.listMembers(ctx, groupID)
}

// Owner returns the owner of a group.
func (s *SQLiteStore) Owner(ctx context.Context, groupID string) (string, error) {
	var owner string
	if err := s.groupColumn(ctx, groupID, "owner_id", &owner); err != nil {
		return "", err
	}
	return owner, nil
}

// IsClosed reports whether a group is closed.
func (s *SQLiteStore) IsClosed(ctx context.Context, groupID string) (bool, error) {
	var closed bool
	if err := s.groupColumn(ctx, groupID, "closed", &closed); err != nil {
		return false, err
	}
	return closed, nil
}

// Name returns the display name of a group.
func (s *SQLiteStore) Name(ctx context.Context, groupID string) (string, error) {
	var name string
	if err := s.groupColumn(ctx, groupID, "name", &name); err != nil {
		return "", err
	}
	return name, nil
}

// groupColumn scans one column of the groups row. column is never user input.
func (s *SQLiteStore) groupColumn(ctx context.Context, groupID, column string, dest any) error {
	err := s.q(ctx).QueryRowContext(ctx,
		"SELECT "+column+" FROM groups WHERE id = ?", groupID).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", groupID, membership.ErrGroupNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get group %s: %w", column, err)
	}
	return nil
}

func (s *SQLiteStore) requireGroup(ctx context.Context, groupID string) error {
	var id string
	return s.groupColumn(ctx, groupID, "id", &id)
}

func (s *SQLiteStore) listMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY position", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

func (s *SQLiteStore) insertMembers(ctx context.Context, groupID string, userIDs []string) error {
	q := s.q(ctx)
	for _, userID := range userIDs {
		_, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO group_members (group_id, user_id, position)
			 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM group_members WHERE group_id = ?))`,
			groupID, userID, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}
	}
	return nil
}
