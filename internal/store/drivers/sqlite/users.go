package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hackmatehq/hackmate/internal/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, name, email, password_hash, role, experience, interests, bio, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		role      string
		exp       string
		interests string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&role, &exp, &interests, &u.Bio,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.Experience = domain.Experience(exp)
	u.Interests = splitTags(interests)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash,
		string(u.Role), string(u.Experience), joinTags(u.Interests), u.Bio,
		u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	if u.SeenUsers, err = r.listSet(ctx, `SELECT seen_id FROM seen_users WHERE user_id = ?`, id); err != nil {
		return domain.User{}, err
	}
	if u.SkippedUsers, err = r.listSet(ctx, `SELECT skipped_id FROM skipped_users WHERE user_id = ?`, id); err != nil {
		return domain.User{}, err
	}

	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) listSet(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, query, userID)
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

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		 SET name = ?, role = ?, experience = ?, interests = ?, bio = ?, updated_at = ?
		 WHERE id = ?`,
		u.Name, string(u.Role), string(u.Experience), joinTags(u.Interests), u.Bio,
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ListCandidates(ctx context.Context, excludeIDs []string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = 1`
	args := make([]any, 0, len(excludeIDs))
	if len(excludeIDs) > 0 {
		query += ` AND id NOT IN (?` + strings.Repeat(", ?", len(excludeIDs)-1) + `)`
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) AddSeen(ctx context.Context, userID, seenID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO seen_users (user_id, seen_id) VALUES (?, ?)`,
		userID, seenID,
	)
	return err
}

func (r *usersRepo) AddSkipped(ctx context.Context, userID, skippedID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO skipped_users (user_id, skipped_id) VALUES (?, ?)`,
		userID, skippedID,
	)
	return err
}

func (r *usersRepo) ResetLists(ctx context.Context, userID string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM seen_users WHERE user_id = ?`, userID); err != nil {
		return err
	}
	_, err := r.q.ExecContext(ctx, `DELETE FROM skipped_users WHERE user_id = ?`, userID)
	return err
}

// requireRow maps zero-row updates to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
