package services

import (
	"context"
	"database/sql"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/plans"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
)

// PlanPatch carries partial updates; nil fields are untouched.
type PlanPatch struct {
	EndDate          *string
	TotalBudgetCents *int64
	Status           *string
}

type PlanService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPlanService(db *sql.DB, m repomanager.RepositoryManager) *PlanService {
	return &PlanService{db: db, repomanager: m}
}

func (s *PlanService) List(ctx context.Context, f plans.Filter) ([]*models.Plan, int, error) {
	return s.repomanager.Plans(s.db).List(ctx, f)
}

func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	return s.repomanager.Plans(s.db).Get(ctx, id)
}

func (s *PlanService) Create(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	if p.ParticipantID == "" || p.StartDate == "" || p.EndDate == "" || p.TotalBudgetCents <= 0 {
		return nil, common.ErrorValidation
	}
	if p.Status == "" {
		p.Status = models.PlanActive
	}
	return s.repomanager.Plans(s.db).Create(ctx, p)
}

func (s *PlanService) Update(ctx context.Context, id string, patch PlanPatch) (*models.Plan, error) {
	repo := s.repomanager.Plans(s.db)

	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if patch.TotalBudgetCents != nil {
		p.TotalBudgetCents = *patch.TotalBudgetCents
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return repo.Update(ctx, p)
}

type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	return s.repomanager.Dashboard(s.db).Summary(ctx)
}
