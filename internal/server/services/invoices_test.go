package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/dbx"
	"github.com/evercare/planhub/internal/server/config"
	"github.com/evercare/planhub/internal/server/models"
	invoicesrepo "github.com/evercare/planhub/internal/server/repositories/invoices"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

type fakeInvoicesRepo struct {
	getOut *models.Invoice
	getErr error

	updatedTo string
}

func (f *fakeInvoicesRepo) List(ctx context.Context, fl invoicesrepo.Filter) ([]*models.Invoice, int, error) {
	return nil, 0, nil
}

func (f *fakeInvoicesRepo) Get(ctx context.Context, id string) (*models.Invoice, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeInvoicesRepo) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	inv.ID = "i-new"
	return inv, nil
}

func (f *fakeInvoicesRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	f.updatedTo = status
	out := *f.getOut
	out.Status = status
	return &out, nil
}

func (f *fakeInvoicesRepo) ListDocuments(ctx context.Context, fl invoicesrepo.DocumentFilter) ([]*models.Document, int, error) {
	return nil, 0, nil
}

func (f *fakeInvoicesRepo) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeInvoicesRepo) CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error) {
	doc.ID = "d-new"
	return doc, nil
}

func (f *fakeInvoicesRepo) ClaimPendingDocuments(ctx context.Context, limit int) ([]*models.Document, error) {
	return nil, nil
}

func (f *fakeInvoicesRepo) FinishDocument(ctx context.Context, id, status, summary string) error {
	return nil
}

type fakeInvoiceRepoManager struct {
	repomanager.RepositoryManager
	i *fakeInvoicesRepo
}

func (m *fakeInvoiceRepoManager) Invoices(db dbx.DBTX) invoicesrepo.Repository { return m.i }

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeInvoiceRepoManager{i: &fakeInvoicesRepo{
		getOut: &models.Invoice{ID: "i-1", Status: models.InvoiceDraft},
	}}
	s := NewInvoiceService(db, rm, &config.Config{})

	inv, err := s.UpdateStatus(context.Background(), "i-1", models.InvoiceSubmitted)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if inv.Status != models.InvoiceSubmitted || rm.i.updatedTo != models.InvoiceSubmitted {
		t.Fatalf("unexpected status: %+v", inv)
	}
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cases := []struct{ from, to string }{
		{models.InvoiceDraft, models.InvoicePaid},
		{models.InvoicePaid, models.InvoiceDraft},
		{models.InvoiceApproved, models.InvoiceRejected},
		{models.InvoiceDraft, "bogus"},
	}
	for _, tc := range cases {
		rm := &fakeInvoiceRepoManager{i: &fakeInvoicesRepo{
			getOut: &models.Invoice{ID: "i-1", Status: tc.from},
		}}
		s := NewInvoiceService(db, rm, &config.Config{})

		if _, err := s.UpdateStatus(context.Background(), "i-1", tc.to); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("%s -> %s: want ErrorValidation, got %v", tc.from, tc.to, err)
		}
		if rm.i.updatedTo != "" {
			t.Fatalf("%s -> %s: repo should not be touched", tc.from, tc.to)
		}
	}
}

func TestUpdateStatus_RejectedResubmit(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeInvoiceRepoManager{i: &fakeInvoicesRepo{
		getOut: &models.Invoice{ID: "i-1", Status: models.InvoiceRejected},
	}}
	s := NewInvoiceService(db, rm, &config.Config{})

	if _, err := s.UpdateStatus(context.Background(), "i-1", models.InvoiceSubmitted); err != nil {
		t.Fatalf("rejected invoices should be resubmittable: %v", err)
	}
}

func TestCreateInvoice_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeInvoiceRepoManager{i: &fakeInvoicesRepo{}}
	s := NewInvoiceService(db, rm, &config.Config{})

	_, err := s.Create(context.Background(), &models.Invoice{InvoiceNumber: "INV-1"})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestCreateInvoice_StartsAsDraft(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeInvoiceRepoManager{i: &fakeInvoicesRepo{}}
	s := NewInvoiceService(db, rm, &config.Config{})

	inv, err := s.Create(context.Background(), &models.Invoice{
		InvoiceNumber: "INV-1", ParticipantID: "p-1", ProviderID: "pr-1", AmountCents: 1000,
		Status: models.InvoicePaid, // ignored
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if inv.Status != models.InvoiceDraft {
		t.Fatalf("want draft, got %q", inv.Status)
	}
}

func TestDocumentStorageKey_ScopedToInvoice(t *testing.T) {
	key := documentStorageKey("i-42")
	if !strings.HasPrefix(key, "invoices/i-42/") {
		t.Fatalf("unexpected key: %q", key)
	}
	if key == documentStorageKey("i-42") {
		t.Fatal("keys must be unique")
	}
}
