// Package validation runs the background worker that moves uploaded invoice
// documents from pending through processing to a terminal status.
package validation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/evercare/planhub/internal/logging"
	"github.com/evercare/planhub/internal/obs"
	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

// claimBatchSize caps how many documents one scan picks up.
const claimBatchSize = 10

type Worker struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	interval    time.Duration

	// validate is the check applied to a claimed document. Swappable in
	// tests; the default applies the file name rules below.
	validate func(doc *models.Document) (status string, summary string)
}

func NewWorker(db *sql.DB, m repomanager.RepositoryManager, interval time.Duration, logger logging.Logger) *Worker {
	return &Worker{
		db:          db,
		repomanager: m,
		logger:      logger,
		interval:    interval,
		validate:    validateDocument,
	}
}

// Run scans for pending documents every interval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info(ctx, "validation worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "validation worker stopped")
			return
		case <-ticker.C:
			if err := w.scan(ctx); err != nil {
				w.logger.Error(ctx, "validation scan failed", "error", err)
			}
		}
	}
}

// scan claims a batch of pending documents and settles each one.
func (w *Worker) scan(ctx context.Context) error {
	repo := w.repomanager.Invoices(w.db)

	docs, err := repo.ClaimPendingDocuments(ctx, claimBatchSize)
	if err != nil {
		return fmt.Errorf("claiming documents: %w", err)
	}

	for _, doc := range docs {
		status, summary := w.validate(doc)
		if err := repo.FinishDocument(ctx, doc.ID, status, summary); err != nil {
			w.logger.Error(ctx, "failed to finish document", "document_id", doc.ID, "error", err)
			continue
		}
		obs.ObserveValidation(status)
		w.logger.Info(ctx, "document validated",
			"document_id", doc.ID, "invoice_id", doc.InvoiceID, "status", status)
	}
	return nil
}

// validateDocument applies the file checks: the document must be a PDF and
// its name must be sane. Content inspection happens downstream once the
// scanning pipeline is in place.
func validateDocument(doc *models.Document) (string, string) {
	name := strings.ToLower(doc.FileName)
	switch {
	case !strings.HasSuffix(name, ".pdf"):
		return models.DocumentFailed, "unsupported file type, expected PDF"
	case strings.ContainsAny(doc.FileName, `/\`):
		return models.DocumentFailed, "file name must not contain path separators"
	case len(doc.FileName) > 255:
		return models.DocumentFailed, "file name too long"
	default:
		return models.DocumentCompleted, "document accepted"
	}
}
