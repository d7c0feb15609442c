// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"kasatakip/internal/models"
)

// ibanRegex accepts the compact IBAN layout: country, check digits, up to 30 alphanumerics.
var ibanRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("account_source", validateAccountSource)
		_ = v.RegisterValidation("counterparty_type", validateCounterpartyType)
		_ = v.RegisterValidation("salary_period", validateSalaryPeriod)
		_ = v.RegisterValidation("bank_account_type", validateBankAccountType)
		_ = v.RegisterValidation("iban", validateIBAN)
		_ = v.RegisterValidation("report_type", validateReportType)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateAccountSource(fl validator.FieldLevel) bool {
	return models.AccountSource(fl.Field().String()).Valid()
}

func validateCounterpartyType(fl validator.FieldLevel) bool {
	return models.CounterpartyType(fl.Field().String()).Valid()
}

func validateSalaryPeriod(fl validator.FieldLevel) bool {
	return models.SalaryPeriod(fl.Field().String()).Valid()
}

func validateBankAccountType(fl validator.FieldLevel) bool {
	return models.BankAccountType(fl.Field().String()).Valid()
}

// IBANs are validated on their compact form; spaces are ignored.
func validateIBAN(fl validator.FieldLevel) bool {
	compact := strings.ToUpper(strings.ReplaceAll(fl.Field().String(), " ", ""))
	return ibanRegex.MatchString(compact)
}

func validateReportType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "income", "expense":
		return true
	}
	return false
}
