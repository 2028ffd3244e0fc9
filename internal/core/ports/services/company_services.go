package services

import (
	"context"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

// CompanyAuthorizerSvc checks that an actor may operate on a company. The
// actor's company is set at the trust boundary; a mismatch is treated as a
// potential attack and fails closed.
type CompanyAuthorizerSvc interface {
	AuthorizeActor(ctx context.Context, actor domain.Actor, companyID string) error
}

// CompanySvcFacade administers tenant records.
type CompanySvcFacade interface {
	CompanyAuthorizerSvc

	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, actor domain.Actor) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}
