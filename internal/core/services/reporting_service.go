package services

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	companyAuth   portssvc.CompanyAuthorizerSvc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// NewReportingService creates a new reporting service instance.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, companyAuth portssvc.CompanyAuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, companyAuth: companyAuth}
}

func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, actor domain.Actor) ([]domain.TrialBalanceRow, error) {
	if err := s.companyAuth.AuthorizeActor(ctx, actor, companyID); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to compute trial balance", "asOf", asOf.Format(time.DateOnly))
		return nil, err
	}
	return rows, nil
}
