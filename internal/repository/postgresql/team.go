package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/solacehr/leave-backend-go/internal/domain/team"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
	"github.com/solacehr/leave-backend-go/internal/pkg/database"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

func (r *teamRepositoryImpl) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var t team.Team
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, err
	}

	return t, nil
}

func (r *teamRepositoryImpl) CountActiveMembers(ctx context.Context, teamID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM users
		WHERE team_id = $1 AND active = TRUE
	`

	var count int
	if err := q.QueryRow(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active team members: %w", err)
	}

	return count, nil
}

func (r *teamRepositoryImpl) CountActiveMembersByTeams(ctx context.Context, teamIDs []string) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT team_id, COUNT(*)
		FROM users
		WHERE team_id = ANY($1) AND active = TRUE
		GROUP BY team_id
	`

	rows, err := q.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count active members per team: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(teamIDs))
	for rows.Next() {
		var teamID string
		var count int
		if err := rows.Scan(&teamID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan member count: %w", err)
		}
		counts[teamID] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

const teamLeadColumns = `
	id, full_name, role, active, leave_balance, team_id, created_at, updated_at
`

func (r *teamRepositoryImpl) GetLead(ctx context.Context, teamID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + teamLeadColumns + `
		FROM users
		WHERE team_id = $1 AND role = 'team_lead' AND active = TRUE
	`

	var u user.User
	err := q.QueryRow(ctx, query, teamID).Scan(
		&u.ID, &u.FullName, &u.Role, &u.Active, &u.LeaveBalance, &u.TeamID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, team.ErrNoTeamLead
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *teamRepositoryImpl) GetLeadsByTeams(ctx context.Context, teamIDs []string) (map[string]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + teamLeadColumns + `
		FROM users
		WHERE team_id = ANY($1) AND role = 'team_lead' AND active = TRUE
	`

	rows, err := q.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query team leads: %w", err)
	}
	defer rows.Close()

	leads := make(map[string]user.User, len(teamIDs))
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID, &u.FullName, &u.Role, &u.Active, &u.LeaveBalance, &u.TeamID,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team lead: %w", err)
		}
		if u.TeamID != nil {
			leads[*u.TeamID] = u
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return leads, nil
}
