// Package repository provides data access for the matching module. It is the
// only writer of the matches table; every mutation goes through one of the
// replace operations below.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estatedesk/internal/matching/engine"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrMatchNotFound = errors.New("match not found")
)

type Match struct {
	ID             uuid.UUID
	LeadID         uuid.UUID
	ListingID      uuid.UUID
	Score          int
	Reasons        []string
	HighlySuitable bool
	Approved       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// =============================================================================
// Candidate reads
// =============================================================================

// ListActiveInterestLeads returns the matching inputs for every lead in an
// active-interest status, ordered by creation time so full regeneration
// enumerates candidates deterministically.
func (r *Repository) ListActiveInterestLeads(ctx context.Context, statuses []string) ([]engine.LeadInput, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, location, category, budget_min, budget_max, tags
		FROM leads
		WHERE status = ANY($1)
		ORDER BY created_at ASC, id ASC
	`, statuses)
	if err != nil {
		return nil, fmt.Errorf("matching: list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]engine.LeadInput, 0)
	for rows.Next() {
		var lead engine.LeadInput
		if err := rows.Scan(&lead.ID, &lead.Location, &lead.Category, &lead.BudgetMin, &lead.BudgetMax, &lead.Tags); err != nil {
			return nil, fmt.Errorf("matching: scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

// GetLeadInput returns the matching input for one lead regardless of status.
func (r *Repository) GetLeadInput(ctx context.Context, id uuid.UUID) (engine.LeadInput, error) {
	var lead engine.LeadInput
	err := r.pool.QueryRow(ctx, `
		SELECT id, location, category, budget_min, budget_max, tags
		FROM leads WHERE id = $1
	`, id).Scan(&lead.ID, &lead.Location, &lead.Category, &lead.BudgetMin, &lead.BudgetMax, &lead.Tags)
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.LeadInput{}, ErrLeadNotFound
	}
	if err != nil {
		return engine.LeadInput{}, fmt.Errorf("matching: get lead: %w", err)
	}
	return lead, nil
}

// ListActiveListings returns the matching inputs for all active listings,
// ordered by ID for deterministic candidate enumeration.
func (r *Repository) ListActiveListings(ctx context.Context) ([]engine.ListingInput, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, location, category, price, price_min, price_max, tags
		FROM listings
		WHERE is_active = true
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("matching: list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]engine.ListingInput, 0)
	for rows.Next() {
		var listing engine.ListingInput
		if err := rows.Scan(&listing.ID, &listing.Location, &listing.Category, &listing.Price, &listing.PriceMin, &listing.PriceMax, &listing.Tags); err != nil {
			return nil, fmt.Errorf("matching: scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return listings, nil
}

// =============================================================================
// Match persistence
// =============================================================================

// ReplaceAll is the legacy full-regeneration strategy: wipe the whole table,
// then bulk insert. The two statements deliberately run outside a transaction;
// a failed insert after a successful delete leaves the table empty, and the
// error propagates so the degraded state is visible rather than masked.
// Approved flags on still-qualifying pairs are lost. See DESIGN.md.
func (r *Repository) ReplaceAll(ctx context.Context, candidates []engine.Candidate) (int, error) {
	if _, err := r.pool.Exec(ctx, `DELETE FROM matches`); err != nil {
		return 0, fmt.Errorf("matching: delete all: %w", err)
	}

	inserted, err := r.copyCandidates(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("matching: bulk insert: %w", err)
	}
	return inserted, nil
}

// DiffReplaceAll is the corrected full-regeneration strategy: upsert every
// candidate and delete only the pairs that no longer qualify. Approved flags
// on surviving pairs are preserved.
func (r *Repository) DiffReplaceAll(ctx context.Context, candidates []engine.Candidate) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	keepLeads := make([]uuid.UUID, 0, len(candidates))
	keepListings := make([]uuid.UUID, 0, len(candidates))

	for _, c := range candidates {
		reasonsJSON, err := json.Marshal(c.Reasons)
		if err != nil {
			return 0, err
		}
		batch.Queue(`
			INSERT INTO matches (lead_id, listing_id, score, reasons, highly_suitable)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (lead_id, listing_id) DO UPDATE SET
				score = EXCLUDED.score,
				reasons = EXCLUDED.reasons,
				highly_suitable = EXCLUDED.highly_suitable,
				updated_at = now()
		`, c.LeadID, c.ListingID, c.Score, reasonsJSON, c.HighlySuitable)
		keepLeads = append(keepLeads, c.LeadID)
		keepListings = append(keepListings, c.ListingID)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("matching: diff upsert: %w", err)
	}

	// Remove pairs that disappeared from the candidate set.
	if _, err := tx.Exec(ctx, `
		DELETE FROM matches m
		WHERE NOT EXISTS (
			SELECT 1 FROM unnest($1::uuid[], $2::uuid[]) AS keep(lead_id, listing_id)
			WHERE keep.lead_id = m.lead_id AND keep.listing_id = m.listing_id
		)
	`, keepLeads, keepListings); err != nil {
		return 0, fmt.Errorf("matching: diff delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(candidates), nil
}

// ReplaceForLead replaces one lead's match rows with the given candidates.
// Delete and insert run as separate statements; readers in between observe an
// empty set for that lead, an accepted staleness window.
func (r *Repository) ReplaceForLead(ctx context.Context, leadID uuid.UUID, candidates []engine.Candidate) (int, error) {
	if _, err := r.pool.Exec(ctx, `DELETE FROM matches WHERE lead_id = $1`, leadID); err != nil {
		return 0, fmt.Errorf("matching: delete for lead: %w", err)
	}

	inserted, err := r.copyCandidates(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("matching: insert for lead: %w", err)
	}
	return inserted, nil
}

func (r *Repository) copyCandidates(ctx context.Context, candidates []engine.Candidate) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(candidates))
	for _, c := range candidates {
		reasonsJSON, err := json.Marshal(c.Reasons)
		if err != nil {
			return 0, err
		}
		rows = append(rows, []any{c.LeadID, c.ListingID, c.Score, reasonsJSON, c.HighlySuitable})
	}

	copied, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"matches"},
		[]string{"lead_id", "listing_id", "score", "reasons", "highly_suitable"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, err
	}
	return int(copied), nil
}

// ListByLead returns a lead's matches, best first.
func (r *Repository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]Match, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, listing_id, score, reasons, highly_suitable, approved, created_at, updated_at
		FROM matches
		WHERE lead_id = $1
		ORDER BY score DESC, listing_id ASC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("matching: list by lead: %w", err)
	}
	defer rows.Close()

	matches := make([]Match, 0)
	for rows.Next() {
		var m Match
		var reasonsJSON []byte
		if err := rows.Scan(&m.ID, &m.LeadID, &m.ListingID, &m.Score, &reasonsJSON, &m.HighlySuitable, &m.Approved, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("matching: scan match: %w", err)
		}
		if err := json.Unmarshal(reasonsJSON, &m.Reasons); err != nil {
			return nil, fmt.Errorf("matching: decode reasons: %w", err)
		}
		matches = append(matches, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return matches, nil
}

// SetApproved sets the user-controlled approved flag. Scoring never touches it.
func (r *Repository) SetApproved(ctx context.Context, matchID uuid.UUID, approved bool) (Match, error) {
	var m Match
	var reasonsJSON []byte
	err := r.pool.QueryRow(ctx, `
		UPDATE matches SET approved = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, lead_id, listing_id, score, reasons, highly_suitable, approved, created_at, updated_at
	`, matchID, approved).Scan(&m.ID, &m.LeadID, &m.ListingID, &m.Score, &reasonsJSON, &m.HighlySuitable, &m.Approved, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Match{}, ErrMatchNotFound
	}
	if err != nil {
		return Match{}, fmt.Errorf("matching: set approved: %w", err)
	}
	if err := json.Unmarshal(reasonsJSON, &m.Reasons); err != nil {
		return Match{}, fmt.Errorf("matching: decode reasons: %w", err)
	}
	return m, nil
}
