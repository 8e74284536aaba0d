package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffpulse/internal/model"
	"staffpulse/internal/store"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/snowflake"
)

type OrganizationService struct {
	orgs *store.OrganizationStore
}

var (
	orgService     *OrganizationService
	orgServiceOnce sync.Once
)

func GetOrganizationService() *OrganizationService {
	orgServiceOnce.Do(func() {
		orgService = &OrganizationService{orgs: store.GetOrganizationStore()}
	})
	return orgService
}

func (s *OrganizationService) Create(ctx context.Context, name, plan, timezone string) (*model.Organization, error) {
	if plan == "" {
		plan = model.PlanFree
	}
	if timezone == "" {
		timezone = "UTC"
	}

	org := &model.Organization{
		PublicID: uuid.NewString(),
		Name:     name,
		Plan:     plan,
		Status:   model.OrgStatusActive,
		Timezone: timezone,
	}
	org.ID = snowflake.NextID()

	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	logger.Logger.Info("Organization created",
		zap.String("public_id", org.PublicID),
		zap.String("plan", org.Plan),
	)

	return org, nil
}

func (s *OrganizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	return s.orgs.GetByID(ctx, id)
}

func (s *OrganizationService) GetByPublicID(ctx context.Context, publicID string) (*model.Organization, error) {
	return s.orgs.GetByPublicID(ctx, publicID)
}

func (s *OrganizationService) ChangePlan(ctx context.Context, id int64, plan string) error {
	return s.orgs.UpdatePlan(ctx, id, plan)
}
