package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
	"github.com/solacehr/leave-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role, active, leave_balance, team_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FullName, &u.Role, &u.Active, &u.LeaveBalance, &u.TeamID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *userRepositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, role, active, leave_balance, team_id, created_at, updated_at
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]user.User, len(ids))
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID, &u.FullName, &u.Role, &u.Active, &u.LeaveBalance, &u.TeamID,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[u.ID] = u
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) DeductBalance(ctx context.Context, id string, days int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Conditional decrement: never lets the balance go negative, even
	// under concurrent approvals.
	query := `
		UPDATE users
		SET leave_balance = leave_balance - $2, updated_at = NOW()
		WHERE id = $1 AND leave_balance >= $2
	`

	tag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return false, fmt.Errorf("failed to deduct leave balance for user %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}
