package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, from_user, to_user, status, match_score, responded_at, created_at, updated_at`

func scanInvite(row interface{ Scan(...any) error }) (domain.Invite, error) {
	var (
		inv         domain.Invite
		status      string
		respondedAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.FromUser, &inv.ToUser, &status,
		&inv.MatchScore, &respondedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	inv.Status = domain.InviteStatus(status)
	inv.RespondedAt = mapNullTimePtr(respondedAt)
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invites (`+inviteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.FromUser, inv.ToUser, string(inv.Status),
		inv.MatchScore, nil, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites WHERE id = ?`, id)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) GetInviteByPair(ctx context.Context, fromUser, toUser string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE from_user = ? AND to_user = ?`,
		fromUser, toUser,
	)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListInvitedIDs(ctx context.Context, fromUser string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT DISTINCT to_user FROM invites WHERE from_user = ?`, fromUser)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *invitesRepo) ListIncomingPending(ctx context.Context, toUser string) ([]domain.Invite, error) {
	return r.list(ctx,
		`SELECT `+inviteColumns+` FROM invites
		 WHERE to_user = ? AND status = 'pending'
		 ORDER BY created_at DESC`, toUser)
}

func (r *invitesRepo) ListSent(ctx context.Context, fromUser string) ([]domain.Invite, error) {
	return r.list(ctx,
		`SELECT `+inviteColumns+` FROM invites
		 WHERE from_user = ?
		 ORDER BY created_at DESC`, fromUser)
}

func (r *invitesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *invitesRepo) UpdateStatus(ctx context.Context, id string, status domain.InviteStatus, respondedAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invites SET status = ?, responded_at = ?, updated_at = ? WHERE id = ?`,
		string(status), respondedAt, respondedAt, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitesRepo) CountSent(ctx context.Context, fromUser string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM invites WHERE from_user = ?`, fromUser)
}

func (r *invitesRepo) CountReceived(ctx context.Context, toUser string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM invites WHERE to_user = ?`, toUser)
}

func (r *invitesRepo) CountPendingReceived(ctx context.Context, toUser string) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM invites WHERE to_user = ? AND status = 'pending'`, toUser)
}

func (r *invitesRepo) CountAccepted(ctx context.Context, userID string) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM invites
		 WHERE status = 'accepted' AND (from_user = ?1 OR to_user = ?1)`, userID)
}

func (r *invitesRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
