package queries

import (
	"context"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
	"github.com/evercare/planhub/internal/netx"
)

// Invoice and document cache keys.
func InvoicesAll() cache.Key  { return cache.Key{"invoices"} }
func InvoiceLists() cache.Key { return cache.Key{"invoices", "list"} }
func InvoiceList(p api.InvoiceListParams) cache.Key {
	return cache.Key{"invoices", "list", p}
}
func InvoiceDetail(id string) cache.Key { return cache.Key{"invoices", "detail", id} }

func DocumentsAll() cache.Key { return cache.Key{"documents"} }
func DocumentList(p api.DocumentListParams) cache.Key {
	return cache.Key{"documents", "list", p}
}
func DocumentDetail(id string) cache.Key { return cache.Key{"documents", "detail", id} }

func (q *Queries) Invoices(ctx context.Context, params api.InvoiceListParams) (*api.List[api.Invoice], error) {
	return cached(ctx, q, InvoiceList(params), func(ctx context.Context) (*api.List[api.Invoice], error) {
		return q.api.ListInvoices(ctx, params)
	})
}

func (q *Queries) Invoice(ctx context.Context, id string) (*api.Invoice, error) {
	return cached(ctx, q, InvoiceDetail(id), func(ctx context.Context) (*api.Invoice, error) {
		return q.api.GetInvoice(ctx, id)
	})
}

func (q *Queries) CreateInvoice(ctx context.Context, req api.CreateInvoiceRequest) (*api.Invoice, error) {
	inv, err := q.api.CreateInvoice(ctx, req)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(InvoicesAll())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(InvoiceDetail(inv.ID), inv)
	return inv, nil
}

func (q *Queries) UpdateInvoiceStatus(ctx context.Context, id, status string) (*api.Invoice, error) {
	inv, err := q.api.UpdateInvoiceStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	q.cache.Invalidate(InvoiceLists())
	q.cache.Invalidate(DashboardAll())
	q.cache.Put(InvoiceDetail(id), inv)
	return inv, nil
}

func (q *Queries) Documents(ctx context.Context, params api.DocumentListParams) (*api.List[api.Document], error) {
	return cached(ctx, q, DocumentList(params), func(ctx context.Context) (*api.List[api.Document], error) {
		return q.api.ListDocuments(ctx, params)
	})
}

func (q *Queries) Document(ctx context.Context, id string) (*api.Document, error) {
	return cached(ctx, q, DocumentDetail(id), func(ctx context.Context) (*api.Document, error) {
		return q.api.GetDocument(ctx, id)
	})
}

// UploadDocument registers a document for an invoice, PUTs the bytes to the
// presigned URL, and invalidates the document domain so the pending record
// shows up on the next read.
func (q *Queries) UploadDocument(ctx context.Context, invoiceID, fileName, contentType string, contents []byte) (*api.Document, error) {
	up, err := q.api.RegisterDocumentUpload(ctx, invoiceID, fileName, contentType)
	if err != nil {
		return nil, err
	}
	if err := netx.UploadToPresignedURL(ctx, up.UploadURL, contents, contentType); err != nil {
		return nil, err
	}
	q.cache.Invalidate(DocumentsAll())
	q.cache.Invalidate(DashboardAll())
	return &up.Document, nil
}

// WatchDocuments fetches a document page and keeps refetching on the list
// interval while any document is still pending or processing. onUpdate runs
// after every fetch, including the first. Polling for this key stops on its
// own once every document is terminal.
func (q *Queries) WatchDocuments(ctx context.Context, params api.DocumentListParams, onUpdate func(*api.List[api.Document])) error {
	key := DocumentList(params)

	fetch := func(ctx context.Context) (*api.List[api.Document], bool, error) {
		list, err := q.api.ListDocuments(ctx, params)
		if err != nil {
			return nil, false, err
		}
		q.cache.Put(key, list)
		settling := false
		for _, d := range list.Items {
			if !d.Terminal() {
				settling = true
				break
			}
		}
		return list, settling, nil
	}

	list, settling, err := fetch(ctx)
	if err != nil {
		return err
	}
	if onUpdate != nil {
		onUpdate(list)
	}
	if !settling {
		return nil
	}

	q.poller.Start(ctx, key, cache.ListPollInterval, func(ctx context.Context) bool {
		list, settling, err := fetch(ctx)
		if err != nil {
			// Transient fetch failures keep the loop alive; the next tick
			// retries.
			return true
		}
		if onUpdate != nil {
			onUpdate(list)
		}
		return settling
	})
	return nil
}

// WatchDocument refetches a single document on the detail interval until its
// validation reaches a terminal status.
func (q *Queries) WatchDocument(ctx context.Context, id string, onUpdate func(*api.Document)) error {
	key := DocumentDetail(id)

	fetch := func(ctx context.Context) (*api.Document, error) {
		d, err := q.api.GetDocument(ctx, id)
		if err != nil {
			return nil, err
		}
		q.cache.Put(key, d)
		return d, nil
	}

	d, err := fetch(ctx)
	if err != nil {
		return err
	}
	if onUpdate != nil {
		onUpdate(d)
	}
	if d.Terminal() {
		return nil
	}

	q.poller.Start(ctx, key, cache.DetailPollInterval, func(ctx context.Context) bool {
		d, err := fetch(ctx)
		if err != nil {
			return true
		}
		if onUpdate != nil {
			onUpdate(d)
		}
		return !d.Terminal()
	})
	return nil
}
