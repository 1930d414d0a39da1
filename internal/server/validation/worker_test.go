package validation

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/logging"
	"github.com/evercare/planhub/internal/server/models"
	invoicesrepo "github.com/evercare/planhub/internal/server/repositories/invoices"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

type fakeInvoicesRepo struct {
	invoicesrepo.Repository

	mu       sync.Mutex
	pending  []*models.Document
	finished map[string]string
}

func (f *fakeInvoicesRepo) ClaimPendingDocuments(ctx context.Context, limit int) ([]*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := f.pending
	if len(docs) > limit {
		docs = docs[:limit]
	}
	f.pending = f.pending[len(docs):]
	return docs, nil
}

func (f *fakeInvoicesRepo) FinishDocument(ctx context.Context, id, status, summary string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished == nil {
		f.finished = map[string]string{}
	}
	f.finished[id] = status
	return nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	i *fakeInvoicesRepo
}

func (m *fakeRepoManager) Invoices(db dbx.DBTX) invoicesrepo.Repository { return m.i }

func newTestWorker(t *testing.T, repo *fakeInvoicesRepo) (*Worker, *sql.DB) {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	logger := logging.Discard()
	return NewWorker(db, &fakeRepoManager{i: repo}, 5*time.Millisecond, logger), db
}

func TestScan_SettlesClaimedDocuments(t *testing.T) {
	repo := &fakeInvoicesRepo{pending: []*models.Document{
		{ID: "d-1", InvoiceID: "i-1", FileName: "claim.pdf"},
		{ID: "d-2", InvoiceID: "i-1", FileName: "notes.txt"},
	}}
	w, db := newTestWorker(t, repo)
	defer db.Close()

	if err := w.scan(context.Background()); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if repo.finished["d-1"] != models.DocumentCompleted {
		t.Fatalf("d-1: want completed, got %q", repo.finished["d-1"])
	}
	if repo.finished["d-2"] != models.DocumentFailed {
		t.Fatalf("d-2: want failed, got %q", repo.finished["d-2"])
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := &fakeInvoicesRepo{pending: []*models.Document{
		{ID: "d-1", InvoiceID: "i-1", FileName: "claim.pdf"},
	}}
	w, db := newTestWorker(t, repo)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		repo.mu.Lock()
		settled := repo.finished["d-1"] != ""
		repo.mu.Unlock()
		if settled {
			break
		}
		select {
		case <-deadline:
			t.Fatal("document never settled")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestValidateDocument_Rules(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		want     string
	}{
		{"pdf accepted", "invoice.pdf", models.DocumentCompleted},
		{"uppercase extension", "INVOICE.PDF", models.DocumentCompleted},
		{"wrong type", "invoice.docx", models.DocumentFailed},
		{"path separator", "../etc/passwd.pdf", models.DocumentFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, summary := validateDocument(&models.Document{FileName: tc.fileName})
			if status != tc.want {
				t.Fatalf("want %q, got %q (%s)", tc.want, status, summary)
			}
			if summary == "" {
				t.Fatal("summary must not be empty")
			}
		})
	}
}
