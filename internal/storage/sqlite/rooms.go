package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/storage"
)

// CreateRoom persists a new room and its initial members.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room) error {
	// Generate IDs if not set
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.InviteCode == "" {
		room.InviteCode = generateInviteCode()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (id, name, description, invite_code, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		room.ID, room.Name, room.Description, room.InviteCode, room.CreatedBy, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	for i := range room.Members {
		if err := insertMember(ctx, tx, room.ID, &room.Members[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertMember(ctx context.Context, ex execer, roomID string, member *models.Member) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	_, err := ex.ExecContext(ctx,
		"INSERT INTO room_members (room_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		roomID, member.UserID, string(member.Role), member.JoinedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrAlreadyMember
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetRoom retrieves a room by ID, including members in join order.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return s.getRoomWhere(ctx, "id = ?", roomID)
}

// GetRoomByInviteCode retrieves the room an invite code belongs to.
func (s *SQLiteStore) GetRoomByInviteCode(ctx context.Context, code string) (*models.Room, error) {
	return s.getRoomWhere(ctx, "invite_code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

func (s *SQLiteStore) getRoomWhere(ctx context.Context, where string, arg string) (*models.Room, error) {
	room := &models.Room{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, invite_code, created_by, created_at FROM rooms WHERE "+where,
		arg,
	).Scan(&room.ID, &room.Name, &room.Description, &room.InviteCode, &room.CreatedBy, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("room", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	members, err := s.listMembers(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	room.Members = members

	return room, nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, roomID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.user_id, COALESCE(u.display_name, ''), m.role, m.joined_at
		 FROM room_members m LEFT JOIN users u ON u.id = m.user_id
		 WHERE m.room_id = ? ORDER BY m.seq`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var role string
		if err := rows.Scan(&m.UserID, &m.DisplayName, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// ListRoomsByMember retrieves all rooms a user belongs to, oldest first.
func (s *SQLiteStore) ListRoomsByMember(ctx context.Context, userID string) ([]*models.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id FROM rooms r JOIN room_members m ON m.room_id = r.id
		 WHERE m.user_id = ? ORDER BY r.created_at, r.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by member: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan room id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	rooms := make([]*models.Room, 0, len(ids))
	for _, id := range ids {
		room, err := s.GetRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

// UpdateRoom updates a room's name and description.
func (s *SQLiteStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE rooms SET name = ?, description = ? WHERE id = ?",
		room.Name, room.Description, room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return requireAffected(res, "room", room.ID)
}

// AddMember appends a member to a room.
func (s *SQLiteStore) AddMember(ctx context.Context, roomID string, member models.Member) error {
	return insertMember(ctx, s.db, roomID, &member)
}

// RemoveMember removes a user from a room.
func (s *SQLiteStore) RemoveMember(ctx context.Context, roomID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM room_members WHERE room_id = ? AND user_id = ?",
		roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if err := requireAffected(res, "member", userID); err != nil {
		return err
	}

	// A room left without an admin hands the role to its earliest member.
	_, err = tx.ExecContext(ctx, `
		UPDATE room_members SET role = ?
		WHERE seq = (SELECT MIN(seq) FROM room_members WHERE room_id = ?)
		  AND NOT EXISTS (SELECT 1 FROM room_members WHERE room_id = ? AND role = ?)`,
		string(models.RoleAdmin), roomID, roomID, string(models.RoleAdmin),
	)
	if err != nil {
		return fmt.Errorf("failed to promote admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// requireAffected turns a zero-row update or delete into ErrNotFound.
func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}
