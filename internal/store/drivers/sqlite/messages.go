package sqlite

import (
	"context"

	"github.com/hackmatehq/hackmate/internal/domain"
)

type messagesRepo struct {
	q querier
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO messages (id, room_id, sender_id, content, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.RoomID, m.SenderID, m.Content, m.IsRead, m.CreatedAt,
	)
	return err
}

func (r *messagesRepo) ListByRoom(ctx context.Context, roomID string, limit int) ([]domain.Message, error) {
	query := `SELECT id, room_id, sender_id, content, is_read, created_at
	          FROM messages WHERE room_id = ? ORDER BY created_at ASC`
	args := []any{roomID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messagesRepo) MarkRead(ctx context.Context, roomID, readerID string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE messages SET is_read = 1 WHERE room_id = ? AND sender_id != ? AND is_read = 0`,
		roomID, readerID,
	)
	return err
}
