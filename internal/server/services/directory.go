package services

import (
	"context"
	"database/sql"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/coordinators"
	"github.com/evercare/planhub/internal/server/repositories/participants"
	"github.com/evercare/planhub/internal/server/repositories/providers"
	"github.com/evercare/planhub/internal/server/repositories/relationships"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

// ParticipantPatch carries partial updates; nil fields are untouched.
type ParticipantPatch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Status        *string
	CoordinatorID *string
}

type ParticipantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewParticipantService(db *sql.DB, m repomanager.RepositoryManager) *ParticipantService {
	return &ParticipantService{db: db, repomanager: m}
}

func (s *ParticipantService) List(ctx context.Context, f participants.Filter) ([]*models.Participant, int, error) {
	return s.repomanager.Participants(s.db).List(ctx, f)
}

func (s *ParticipantService) Get(ctx context.Context, id string) (*models.Participant, error) {
	return s.repomanager.Participants(s.db).Get(ctx, id)
}

func (s *ParticipantService) Create(ctx context.Context, p *models.Participant) (*models.Participant, error) {
	if p.Status == "" {
		p.Status = models.ParticipantActive
	}
	return s.repomanager.Participants(s.db).Create(ctx, p)
}

func (s *ParticipantService) Update(ctx context.Context, id string, patch ParticipantPatch) (*models.Participant, error) {
	repo := s.repomanager.Participants(s.db)

	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.CoordinatorID != nil {
		p.CoordinatorID = *patch.CoordinatorID
	}
	return repo.Update(ctx, p)
}

func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Participants(s.db).Delete(ctx, id)
}

// ProviderPatch carries partial updates; nil fields are untouched.
type ProviderPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *string
}

type ProviderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProviderService(db *sql.DB, m repomanager.RepositoryManager) *ProviderService {
	return &ProviderService{db: db, repomanager: m}
}

func (s *ProviderService) List(ctx context.Context, f providers.Filter) ([]*models.Provider, int, error) {
	return s.repomanager.Providers(s.db).List(ctx, f)
}

func (s *ProviderService) Get(ctx context.Context, id string) (*models.Provider, error) {
	return s.repomanager.Providers(s.db).Get(ctx, id)
}

func (s *ProviderService) Create(ctx context.Context, p *models.Provider) (*models.Provider, error) {
	if p.Status == "" {
		p.Status = models.ProviderActive
	}
	return s.repomanager.Providers(s.db).Create(ctx, p)
}

func (s *ProviderService) Update(ctx context.Context, id string, patch ProviderPatch) (*models.Provider, error) {
	repo := s.repomanager.Providers(s.db)

	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return repo.Update(ctx, p)
}

func (s *ProviderService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Providers(s.db).Delete(ctx, id)
}

// CoordinatorPatch carries partial updates; nil fields are untouched.
type CoordinatorPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *string
}

type CoordinatorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCoordinatorService(db *sql.DB, m repomanager.RepositoryManager) *CoordinatorService {
	return &CoordinatorService{db: db, repomanager: m}
}

func (s *CoordinatorService) List(ctx context.Context, f coordinators.Filter) ([]*models.Coordinator, int, error) {
	return s.repomanager.Coordinators(s.db).List(ctx, f)
}

func (s *CoordinatorService) Get(ctx context.Context, id string) (*models.Coordinator, error) {
	return s.repomanager.Coordinators(s.db).Get(ctx, id)
}

func (s *CoordinatorService) Create(ctx context.Context, c *models.Coordinator) (*models.Coordinator, error) {
	if c.Status == "" {
		c.Status = "active"
	}
	return s.repomanager.Coordinators(s.db).Create(ctx, c)
}

func (s *CoordinatorService) Update(ctx context.Context, id string, patch CoordinatorPatch) (*models.Coordinator, error) {
	repo := s.repomanager.Coordinators(s.db)

	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	return repo.Update(ctx, c)
}

func (s *CoordinatorService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Coordinators(s.db).Delete(ctx, id)
}

type RelationshipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRelationshipService(db *sql.DB, m repomanager.RepositoryManager) *RelationshipService {
	return &RelationshipService{db: db, repomanager: m}
}

func (s *RelationshipService) List(ctx context.Context, f relationships.Filter) ([]*models.Relationship, int, error) {
	return s.repomanager.Relationships(s.db).List(ctx, f)
}

// Create links a participant with a provider or coordinator. Exactly one of
// ProviderID/CoordinatorID must be set and must match the kind.
func (s *RelationshipService) Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error) {
	switch rel.Kind {
	case models.RelationshipProvider:
		if rel.ProviderID == "" || rel.CoordinatorID != "" {
			return nil, common.ErrorValidation
		}
	case models.RelationshipCoordinator:
		if rel.CoordinatorID == "" || rel.ProviderID != "" {
			return nil, common.ErrorValidation
		}
	default:
		return nil, common.ErrorValidation
	}
	if rel.ParticipantID == "" {
		return nil, common.ErrorValidation
	}
	rel.Status = models.RelationshipActive
	return s.repomanager.Relationships(s.db).Create(ctx, rel)
}

func (s *RelationshipService) End(ctx context.Context, id string) error {
	return s.repomanager.Relationships(s.db).End(ctx, id)
}
