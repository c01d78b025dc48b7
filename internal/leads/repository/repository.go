package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inmobiliaria_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists leads in the leads table. Type-specific answers
// live in a JSONB column so the schema does not change with the form.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore wraps an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

const leadColumns = `id, tipo, nombre, email, whatsapp, whatsapp_e164, mensaje, details,
	score, score_breakdown, estado, agente_asignado, notas, created_at, updated_at`

func (r *PostgresStore) Create(ctx context.Context, params CreateParams) (domain.Lead, error) {
	lead := newLead(params, uuid.NewString(), r.now())

	details, err := domain.MarshalDetails(lead.Details)
	if err != nil {
		return domain.Lead{}, err
	}
	factors, err := json.Marshal(lead.ScoreFactors)
	if err != nil {
		return domain.Lead{}, err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		lead.ID, lead.Tipo, lead.Nombre, lead.Email, lead.Whatsapp, lead.WhatsappE164, lead.Mensaje, details,
		lead.Score, factors, lead.Estado, lead.AgenteAsignado, lead.Notas, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

func (r *PostgresStore) Get(ctx context.Context, id string) (domain.Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Lead{}, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// Update reads the row under a lock, merges the patch in Go and writes the
// mutable columns back, so merge rules match the memory store exactly.
func (r *PostgresStore) Update(ctx context.Context, id string, patch Patch) (domain.Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Lead{}, ErrNotFound
	}

	var updated domain.Lead
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id)
		lead, err := scanLead(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := patch.apply(&lead, r.now()); err != nil {
			return err
		}
		details, err := domain.MarshalDetails(lead.Details)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE leads SET
				nombre = $2, email = $3, whatsapp = $4, whatsapp_e164 = $5, mensaje = $6,
				details = $7, estado = $8, agente_asignado = $9, notas = $10, updated_at = $11
			WHERE id = $1
		`,
			lead.ID, lead.Nombre, lead.Email, lead.Whatsapp, lead.WhatsappE164, lead.Mensaje,
			details, lead.Estado, lead.AgenteAsignado, lead.Notas, lead.UpdatedAt,
		)
		updated = lead
		return err
	})
	if err != nil {
		return domain.Lead{}, err
	}
	return updated, nil
}

func (r *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresStore) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		lead    domain.Lead
		tipo    string
		estado  string
		details []byte
		factors []byte
	)
	err := row.Scan(
		&lead.ID, &tipo, &lead.Nombre, &lead.Email, &lead.Whatsapp, &lead.WhatsappE164, &lead.Mensaje, &details,
		&lead.Score, &factors, &estado, &lead.AgenteAsignado, &lead.Notas, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}

	lead.Tipo = domain.LeadType(tipo)
	lead.Estado = domain.Status(estado)
	if lead.Details, err = domain.UnmarshalDetails(lead.Tipo, details); err != nil {
		return domain.Lead{}, fmt.Errorf("decode details of lead %s: %w", lead.ID, err)
	}
	if len(factors) > 0 {
		if err := json.Unmarshal(factors, &lead.ScoreFactors); err != nil {
			return domain.Lead{}, fmt.Errorf("decode score breakdown of lead %s: %w", lead.ID, err)
		}
	}
	return lead, nil
}
