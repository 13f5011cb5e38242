package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

// Lead lifecycle statuses. StatusNoResponse is the distinguished state the
// escalation engine operates on; StatusLost is terminal for automation.
const (
	StatusNew            = "new"
	StatusContacted      = "contacted"
	StatusVisitScheduled = "visit_scheduled"
	StatusNegotiating    = "negotiating"
	StatusNoResponse     = "rnr_swo"
	StatusBooked         = "booked"
	StatusLost           = "lost"
)

// ActiveInterestStatuses are the lead statuses eligible for matching.
var ActiveInterestStatuses = []string{StatusNew, StatusContacted, StatusVisitScheduled, StatusNegotiating}

// ValidStatuses lists every accepted lead status.
var ValidStatuses = []string{
	StatusNew, StatusContacted, StatusVisitScheduled, StatusNegotiating,
	StatusNoResponse, StatusBooked, StatusLost,
}

type Lead struct {
	ID               uuid.UUID
	FullName         string
	Phone            string
	Email            *string
	Location         *string
	Category         *string
	BudgetMin        *float64
	BudgetMax        *float64
	Status           string
	LastContactedAt  *time.Time
	NextFollowupDate *time.Time
	NextFollowupTime *string
	JunkReason       *string
	Tags             []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, full_name, phone, email, location, category, budget_min, budget_max,
	status, last_contacted_at, next_followup_date, next_followup_time, junk_reason, tags,
	created_at, updated_at`

// leadRowScanner is satisfied by pgx.Rows and pgx.Row so scanLead can be
// shared between single-row and multi-row queries.
type leadRowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s leadRowScanner) (Lead, error) {
	var lead Lead
	err := s.Scan(
		&lead.ID, &lead.FullName, &lead.Phone, &lead.Email, &lead.Location, &lead.Category,
		&lead.BudgetMin, &lead.BudgetMax, &lead.Status, &lead.LastContactedAt,
		&lead.NextFollowupDate, &lead.NextFollowupTime, &lead.JunkReason, &lead.Tags,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

type CreateLeadParams struct {
	FullName  string
	Phone     string
	Email     *string
	Location  *string
	Category  *string
	BudgetMin *float64
	BudgetMax *float64
	Tags      []string
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (full_name, phone, email, location, category, budget_min, budget_max, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+leadColumns+`
	`, params.FullName, params.Phone, params.Email, params.Location, params.Category,
		params.BudgetMin, params.BudgetMax, params.Tags)

	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

type ListParams struct {
	Status string
	Offset int
	Limit  int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM leads WHERE ($1 = '' OR status = $1)
	`, params.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, params.Status, params.Offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}

type UpdateLeadParams struct {
	ID        uuid.UUID
	FullName  *string
	Phone     *string
	Email     *string
	Location  *string
	Category  *string
	BudgetMin *float64
	BudgetMax *float64
	Tags      []string
}

func (r *Repository) Update(ctx context.Context, params UpdateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET
			full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			email = COALESCE($4, email),
			location = COALESCE($5, location),
			category = COALESCE($6, category),
			budget_min = COALESCE($7, budget_min),
			budget_max = COALESCE($8, budget_max),
			tags = COALESCE($9, tags),
			updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns+`
	`, params.ID, params.FullName, params.Phone, params.Email, params.Location,
		params.Category, params.BudgetMin, params.BudgetMax, params.Tags)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// UpdateStatus sets the lead status. Moving into the no-response state stamps
// last_contacted_at and seeds the first follow-up so the escalation batch
// picks the lead up.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, followupDate *time.Time, followupTime *string) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET
			status = $2,
			last_contacted_at = CASE WHEN $2 = 'rnr_swo' THEN now() ELSE last_contacted_at END,
			next_followup_date = COALESCE($3, next_followup_date),
			next_followup_time = COALESCE($4, next_followup_time),
			updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns+`
	`, id, status, followupDate, followupTime)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// ListDueForFollowup returns no-response leads whose follow-up falls on the
// given day. Terminal leads never match because their status is 'lost'.
func (r *Repository) ListDueForFollowup(ctx context.Context, day time.Time) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE status = $1 AND next_followup_date = $2::date
		ORDER BY created_at ASC
	`, StatusNoResponse, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

// ScheduleFollowup persists the next follow-up slot chosen by the escalation
// engine. Guarded on status so a lead terminated by a concurrent run is not
// resurrected.
func (r *Repository) ScheduleFollowup(ctx context.Context, id uuid.UUID, date time.Time, timeOfDay string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			next_followup_date = $2::date,
			next_followup_time = $3,
			updated_at = now()
		WHERE id = $1 AND status = $4
	`, id, date, timeOfDay, StatusNoResponse)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkLost terminates the lead. No follow-up remains scheduled afterwards.
func (r *Repository) MarkLost(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			status = $2,
			junk_reason = $3,
			next_followup_date = NULL,
			next_followup_time = NULL,
			updated_at = now()
		WHERE id = $1 AND status = $4
	`, id, StatusLost, reason, StatusNoResponse)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
