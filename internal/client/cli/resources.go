package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evercare/planhub/internal/client/api"
)

// Participants prints the first page of participants.
func (a *App) Participants(ctx context.Context) error {
	list, err := a.queries.Participants(ctx, api.ParticipantListParams{Page: api.PageParams{Limit: a.pageSize(ctx)}})
	if err != nil {
		return err
	}
	for _, p := range list.Items {
		fmt.Printf("%s  %s %s  ndis=%s  status=%s\n", p.ID, p.FirstName, p.LastName, p.NDISNumber, p.Status)
	}
	fmt.Printf("%d of %d participants\n", len(list.Items), list.Total)
	return nil
}

// Providers prints the first page of providers.
func (a *App) Providers(ctx context.Context) error {
	list, err := a.queries.Providers(ctx, api.ProviderListParams{Page: api.PageParams{Limit: a.pageSize(ctx)}})
	if err != nil {
		return err
	}
	for _, p := range list.Items {
		fmt.Printf("%s  %s  abn=%s  status=%s\n", p.ID, p.Name, p.ABN, p.Status)
	}
	fmt.Printf("%d of %d providers\n", len(list.Items), list.Total)
	return nil
}

// Coordinators prints the first page of coordinators.
func (a *App) Coordinators(ctx context.Context) error {
	list, err := a.queries.Coordinators(ctx, api.CoordinatorListParams{Page: api.PageParams{Limit: a.pageSize(ctx)}})
	if err != nil {
		return err
	}
	for _, co := range list.Items {
		fmt.Printf("%s  %s <%s>  status=%s\n", co.ID, co.Name, co.Email, co.Status)
	}
	fmt.Printf("%d of %d coordinators\n", len(list.Items), list.Total)
	return nil
}

// Invitations prints pending invitations.
func (a *App) Invitations(ctx context.Context) error {
	list, err := a.queries.Invitations(ctx, api.InvitationListParams{Status: api.InvitationPending, Page: api.PageParams{Limit: a.pageSize(ctx)}})
	if err != nil {
		return err
	}
	for _, inv := range list.Items {
		fmt.Printf("%s  %s as %s  expires=%s\n", inv.ID, inv.Email, inv.Role, inv.ExpiresAt.Format("2006-01-02"))
	}
	fmt.Printf("%d of %d pending invitations\n", len(list.Items), list.Total)
	return nil
}

// Invoices prints the first page of invoices.
func (a *App) Invoices(ctx context.Context) error {
	list, err := a.queries.Invoices(ctx, api.InvoiceListParams{Page: api.PageParams{Limit: a.pageSize(ctx)}})
	if err != nil {
		return err
	}
	for _, inv := range list.Items {
		fmt.Printf("%s  #%s  $%.2f  status=%s\n", inv.ID, inv.InvoiceNumber, float64(inv.AmountCents)/100, inv.Status)
	}
	fmt.Printf("%d of %d invoices\n", len(list.Items), list.Total)
	return nil
}

// Invoice prints one invoice and its documents.
func (a *App) Invoice(ctx context.Context, id string) error {
	inv, err := a.queries.Invoice(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Invoice #%s  $%.2f  status=%s\n", inv.InvoiceNumber, float64(inv.AmountCents)/100, inv.Status)

	docs, err := a.queries.Documents(ctx, api.DocumentListParams{InvoiceID: id})
	if err != nil {
		return err
	}
	for _, d := range docs.Items {
		line := fmt.Sprintf("  %s  %s  %s", d.ID, d.FileName, d.Status)
		if d.ValidationSummary != "" {
			line += "  (" + d.ValidationSummary + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// Plans prints the first page of NDIS plans.
func (a *App) Plans(ctx context.Context) error {
	list, err := a.queries.Plans(ctx, api.PlanListParams{Page: api.PageParams{Limit: a.pageSize(ctx)}})
	if err != nil {
		return err
	}
	for _, p := range list.Items {
		fmt.Printf("%s  %s..%s  budget=$%.2f spent=$%.2f  status=%s\n",
			p.ID, p.StartDate, p.EndDate,
			float64(p.TotalBudgetCents)/100, float64(p.SpentCents)/100, p.Status)
	}
	fmt.Printf("%d of %d plans\n", len(list.Items), list.Total)
	return nil
}

// Dashboard prints the aggregate counters.
func (a *App) Dashboard(ctx context.Context) error {
	s, err := a.queries.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("participants=%d providers=%d coordinators=%d\n", s.Participants, s.Providers, s.Coordinators)
	fmt.Printf("pending invitations=%d open invoices=%d pending documents=%d\n",
		s.PendingInvitations, s.OpenInvoices, s.PendingDocuments)
	fmt.Printf("active plans=%d total budget=$%.2f\n", s.ActivePlans, float64(s.TotalBudgetCents)/100)
	return nil
}

// Watch follows documents still in validation, reprinting the list every
// refetch until every document settles or the user's context ends.
func (a *App) Watch(ctx context.Context) error {
	params := api.DocumentListParams{}
	fmt.Println("Watching document validation (ctrl-c to stop)...")
	return a.queries.WatchDocuments(ctx, params, func(list *api.List[api.Document]) {
		pending := 0
		for _, d := range list.Items {
			if !d.Terminal() {
				pending++
			}
			fmt.Printf("  %s  %s  %s\n", d.ID, d.FileName, d.Status)
		}
		if pending == 0 {
			fmt.Println("All documents settled.")
		} else {
			fmt.Printf("%d document(s) still validating\n", pending)
		}
	})
}

// Upload registers a document against an invoice and PUTs the file to the
// returned presigned URL.
func (a *App) Upload(ctx context.Context, invoiceID, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := a.queries.UploadDocument(ctx, invoiceID, filepath.Base(path), "application/pdf", contents)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %s as document %s (status=%s)\n", doc.FileName, doc.ID, doc.Status)
	return nil
}
