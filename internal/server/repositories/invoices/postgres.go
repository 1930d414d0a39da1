// Package invoices provides a PostgreSQL-backed repository for invoices
// and their supporting documents.
package invoices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectInvoice = `
	SELECT id, invoice_number, participant_id, provider_id, amount_cents, status, created_at, updated_at
	FROM invoices
`

const selectDocument = `
	SELECT id, invoice_id, file_name, object_key, status, COALESCE(validation_summary, ''), created_at, updated_at
	FROM documents
`

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("participant_id = $%d", f.ParticipantID)
	add("provider_id = $%d", f.ProviderID)
	add("status = $%d", f.Status)
	if len(conds) == 0 {
		return "", args
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause, args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Invoice, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM invoices"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		selectInvoice, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Invoice
	for rows.Next() {
		inv := &models.Invoice{}
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ParticipantID, &inv.ProviderID,
			&inv.AmountCents, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) scanInvoice(row *sql.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ParticipantID, &inv.ProviderID,
		&inv.AmountCents, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return r.scanInvoice(r.db.QueryRowContext(ctx, selectInvoice+" WHERE id = $1", id))
}

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	query := `
		INSERT INTO invoices (invoice_number, participant_id, provider_id, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		inv.InvoiceNumber, inv.ParticipantID, inv.ProviderID, inv.AmountCents, inv.Status).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) (*models.Invoice, error) {
	query := `
		UPDATE invoices
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, invoice_number, participant_id, provider_id, amount_cents, status, created_at, updated_at
	`
	return r.scanInvoice(r.db.QueryRowContext(ctx, query, id, status))
}

func (f DocumentFilter) where() (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("invoice_id = $%d", f.InvoiceID)
	add("status = $%d", f.Status)
	if len(conds) == 0 {
		return "", args
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause, args
}

func (r *PostgresRepository) ListDocuments(ctx context.Context, f DocumentFilter) ([]*models.Document, int, error) {
	clause, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM documents"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		selectDocument, clause, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result, err := scanDocuments(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func scanDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var result []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.InvoiceID, &doc.FileName, &doc.ObjectKey,
			&doc.Status, &doc.ValidationSummary, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, selectDocument+" WHERE id = $1", id).
		Scan(&doc.ID, &doc.InvoiceID, &doc.FileName, &doc.ObjectKey,
			&doc.Status, &doc.ValidationSummary, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query := `
		INSERT INTO documents (invoice_id, file_name, object_key, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, doc.InvoiceID, doc.FileName, doc.ObjectKey, doc.Status).
		Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

// ClaimPendingDocuments atomically moves up to limit pending documents to
// processing and returns them. SKIP LOCKED keeps concurrent workers from
// claiming the same rows.
func (r *PostgresRepository) ClaimPendingDocuments(ctx context.Context, limit int) ([]*models.Document, error) {
	query := `
		UPDATE documents
		SET status = $1, updated_at = now()
		WHERE id IN (
			SELECT id FROM documents
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, invoice_id, file_name, object_key, status, COALESCE(validation_summary, ''), created_at, updated_at
	`
	rows, err := r.db.QueryContext(ctx, query, models.DocumentProcessing, models.DocumentPending, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// FinishDocument records the validation outcome for a claimed document.
func (r *PostgresRepository) FinishDocument(ctx context.Context, id string, status string, summary string) error {
	query := `
		UPDATE documents
		SET status = $2, validation_summary = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, status, summary)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
