package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/evercare/planhub/internal/common"
	sc "github.com/evercare/planhub/internal/server/config"
	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/invoices"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

// presignExpires bounds how long upload and download URLs stay usable.
const presignExpires = 15 * time.Minute

// statusTransitions is the invoice approval workflow. An invoice may only
// move to a status reachable from its current one.
var statusTransitions = map[string][]string{
	models.InvoiceDraft:     {models.InvoiceSubmitted},
	models.InvoiceSubmitted: {models.InvoiceApproved, models.InvoiceRejected},
	models.InvoiceApproved:  {models.InvoicePaid},
	models.InvoiceRejected:  {models.InvoiceSubmitted},
}

type InvoiceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewInvoiceService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *InvoiceService {
	return &InvoiceService{db: db, repomanager: m, config: cfg}
}

func (s *InvoiceService) List(ctx context.Context, f invoices.Filter) ([]*models.Invoice, int, error) {
	return s.repomanager.Invoices(s.db).List(ctx, f)
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return s.repomanager.Invoices(s.db).Get(ctx, id)
}

func (s *InvoiceService) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if inv.InvoiceNumber == "" || inv.ParticipantID == "" || inv.ProviderID == "" || inv.AmountCents <= 0 {
		return nil, common.ErrorValidation
	}
	inv.Status = models.InvoiceDraft
	return s.repomanager.Invoices(s.db).Create(ctx, inv)
}

// UpdateStatus moves an invoice through the approval workflow, rejecting
// transitions the workflow does not allow.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	repo := s.repomanager.Invoices(s.db)

	inv, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range statusTransitions[inv.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, common.ErrorValidation
	}

	return repo.UpdateStatus(ctx, id, status)
}

func (s *InvoiceService) ListDocuments(ctx context.Context, f invoices.DocumentFilter) ([]*models.Document, int, error) {
	return s.repomanager.Invoices(s.db).ListDocuments(ctx, f)
}

func (s *InvoiceService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.repomanager.Invoices(s.db).GetDocument(ctx, id)
}

func documentStorageKey(invoiceID string) string {
	d := time.Now()
	return fmt.Sprintf("invoices/%s/%d/%d/%d/%v", invoiceID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// RegisterUpload records a pending document on the invoice and returns it
// with a presigned PUT URL the caller uploads the file bytes to. The
// validation worker picks the document up once it is stored.
func (s *InvoiceService) RegisterUpload(ctx context.Context, invoiceID, fileName string) (*models.Document, string, error) {
	repo := s.repomanager.Invoices(s.db)

	if _, err := repo.Get(ctx, invoiceID); err != nil {
		return nil, "", err
	}
	if fileName == "" {
		return nil, "", common.ErrorValidation
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", err
	}

	bucket := s.config.S3Bucket
	key := documentStorageKey(invoiceID)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return nil, "", err
	}

	doc, err := repo.CreateDocument(ctx, &models.Document{
		InvoiceID: invoiceID,
		FileName:  fileName,
		ObjectKey: key,
		Status:    models.DocumentPending,
	})
	if err != nil {
		return nil, "", err
	}

	return doc, req.URL, nil
}

// DownloadURL presigns a GET for the stored document object.
func (s *InvoiceService) DownloadURL(ctx context.Context, documentID string) (string, error) {
	doc, err := s.repomanager.Invoices(s.db).GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &doc.ObjectKey,
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// Seams for testing the AWS client construction.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
)

func (s *InvoiceService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}
