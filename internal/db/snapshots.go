package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jonathan/hm-insights/internal/types"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// SnapshotFilters narrows which records are loaded. Zero values load
// everything.
type SnapshotFilters struct {
	Function        string // filter requisitions by function
	HiringManagerID string // filter requisitions by hiring manager
}

// LoadSnapshot reads the four record collections from the database,
// applying any filters to the requisition set and restricting candidates
// and events to the selected requisitions.
func (db *DB) LoadSnapshot(ctx context.Context, filters SnapshotFilters) (*types.Snapshot, error) {
	reqs, err := db.loadRequisitions(ctx, filters)
	if err != nil {
		return nil, err
	}

	reqIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		reqIDs = append(reqIDs, r.ReqID)
	}

	candidates, err := db.loadCandidates(ctx, reqIDs)
	if err != nil {
		return nil, err
	}
	events, err := db.loadEvents(ctx, reqIDs)
	if err != nil {
		return nil, err
	}
	users, err := db.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &types.Snapshot{
		Requisitions: reqs,
		Candidates:   candidates,
		Events:       events,
		Users:        users,
	}, nil
}

// loadRequisitions selects requisitions matching the filters, ordered by
// req_id for deterministic snapshots.
func (db *DB) loadRequisitions(ctx context.Context, filters SnapshotFilters) ([]types.Requisition, error) {
	builder := psql.Select(
		"req_id", "req_title", "function", "job_family", "level",
		"location", "location_country", "opened_at", "closed_at",
		"status", "hiring_manager_id", "recruiter_id",
	).From("requisitions").OrderBy("req_id")

	if filters.Function != "" {
		builder = builder.Where(sq.Eq{"function": filters.Function})
	}
	if filters.HiringManagerID != "" {
		builder = builder.Where(sq.Eq{"hiring_manager_id": filters.HiringManagerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build requisitions query: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requisitions: %w", err)
	}
	defer rows.Close()

	var reqs []types.Requisition
	for rows.Next() {
		var r types.Requisition
		if err := rows.Scan(
			&r.ReqID, &r.ReqTitle, &r.Function, &r.JobFamily, &r.Level,
			&r.Location, &r.LocationCountry, &r.OpenedAt, &r.ClosedAt,
			&r.Status, &r.HiringManagerID, &r.RecruiterID,
		); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// loadCandidates selects the candidates belonging to the given reqs.
func (db *DB) loadCandidates(ctx context.Context, reqIDs []string) ([]types.Candidate, error) {
	if len(reqIDs) == 0 {
		return nil, nil
	}
	query, args, err := psql.Select(
		"candidate_id", "req_id", "source", "applied_at", "current_stage",
		"current_stage_entered_at", "disposition", "hired_at",
		"offer_extended_at", "offer_accepted_at",
	).From("candidates").Where(sq.Eq{"req_id": reqIDs}).OrderBy("candidate_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidates query: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		var c types.Candidate
		if err := rows.Scan(
			&c.CandidateID, &c.ReqID, &c.Source, &c.AppliedAt, &c.CurrentStage,
			&c.CurrentStageEnteredAt, &c.Disposition, &c.HiredAt,
			&c.OfferExtendedAt, &c.OfferAcceptedAt,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// loadEvents selects the events belonging to the given reqs, ordered by
// event time then ID so reconstruction sees a stable sequence.
func (db *DB) loadEvents(ctx context.Context, reqIDs []string) ([]types.Event, error) {
	if len(reqIDs) == 0 {
		return nil, nil
	}
	query, args, err := psql.Select(
		"event_id", "candidate_id", "req_id", "event_type",
		"from_stage", "to_stage", "actor_user_id", "event_at", "metadata",
	).From("events").Where(sq.Eq{"req_id": reqIDs}).OrderBy("event_at", "event_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		var ev types.Event
		if err := rows.Scan(
			&ev.EventID, &ev.CandidateID, &ev.ReqID, &ev.EventType,
			&ev.FromStage, &ev.ToStage, &ev.ActorUserID, &ev.EventAt, &ev.Metadata,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// loadUsers selects the whole user directory.
func (db *DB) loadUsers(ctx context.Context) ([]types.User, error) {
	query, args, err := psql.Select(
		"user_id", "name", "role", "team", "manager_user_id",
	).From("users").OrderBy("user_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.UserID, &u.Name, &u.Role, &u.Team, &u.ManagerUserID); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
