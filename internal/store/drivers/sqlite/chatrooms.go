package sqlite

import (
	"context"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
)

type chatRoomsRepo struct {
	q querier
}

const roomColumns = `id, invite_id, participant_a, participant_b, is_active, last_message_at, created_at`

func scanRoom(row interface{ Scan(...any) error }) (domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := row.Scan(
		&room.ID, &room.InviteID, &room.ParticipantA, &room.ParticipantB,
		&room.IsActive, &room.LastMessageAt, &room.CreatedAt,
	)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	return room, nil
}

func (r *chatRoomsRepo) CreateRoom(ctx context.Context, room domain.ChatRoom) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO chat_rooms (`+roomColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		room.ID, room.InviteID, room.ParticipantA, room.ParticipantB,
		room.IsActive, room.LastMessageAt, room.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *chatRoomsRepo) GetRoomByID(ctx context.Context, id string) (domain.ChatRoom, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM chat_rooms WHERE id = ?`, id)
	room, err := scanRoom(row)
	if err != nil {
		return domain.ChatRoom{}, mapNotFound(err)
	}
	return room, nil
}

func (r *chatRoomsRepo) GetRoomByParticipants(ctx context.Context, a, b string) (domain.ChatRoom, error) {
	if b < a {
		a, b = b, a
	}
	row := r.q.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM chat_rooms WHERE participant_a = ? AND participant_b = ?`,
		a, b,
	)
	room, err := scanRoom(row)
	if err != nil {
		return domain.ChatRoom{}, mapNotFound(err)
	}
	return room, nil
}

func (r *chatRoomsRepo) ListRoomsForUser(ctx context.Context, userID string) ([]domain.ChatRoom, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM chat_rooms
		 WHERE participant_a = ?1 OR participant_b = ?1
		 ORDER BY last_message_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.ChatRoom
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *chatRoomsRepo) TouchLastMessage(ctx context.Context, roomID string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE chat_rooms SET last_message_at = ? WHERE id = ?`, at, roomID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
