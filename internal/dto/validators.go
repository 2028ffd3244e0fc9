package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// RegisterCustomValidators attaches the domain enum validations to gin's
// binding validator. Called once from main before routes are registered.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("entryside", validateEntrySide); err != nil {
		return err
	}
	if err := v.RegisterValidation("accountnature", validateAccountNature); err != nil {
		return err
	}
	return v.RegisterValidation("accountcategory", validateAccountCategory)
}

func validateEntrySide(fl validator.FieldLevel) bool {
	switch domain.EntrySide(fl.Field().String()) {
	case domain.Debit, domain.Credit:
		return true
	}
	return false
}

func validateAccountNature(fl validator.FieldLevel) bool {
	switch domain.AccountNature(fl.Field().String()) {
	case domain.DebitNormal, domain.CreditNormal:
		return true
	}
	return false
}

func validateAccountCategory(fl validator.FieldLevel) bool {
	switch domain.AccountCategory(fl.Field().String()) {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
		return true
	}
	return false
}
