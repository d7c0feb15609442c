package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/models"
)

const (
	maxDescriptionLen = 200
	maxPayeeLen       = 100
)

// findOne loads the first row matching query into dest, translating a miss
// into notFound.
func findOne(db *gorm.DB, dest interface{}, notFound *apperrors.AppError, query string, args ...interface{}) error {
	if err := db.Where(query, args...).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// updateVersioned writes updates to row id of model only if its version still
// equals expected, bumping the version. A row that is gone yields notFound; a
// row that moved on yields a concurrency conflict.
func updateVersioned(db *gorm.DB, model interface{}, id string, expected int64, updates map[string]interface{}, notFound *apperrors.AppError) error {
	updates["version"] = gorm.Expr("version + 1")
	res := db.Model(model).Where("id = ? AND version = ?", id, expected).Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return notFound
	}
	return apperrors.ErrConcurrency
}

// expectedVersion picks the caller's version, falling back to the one just read.
func expectedVersion(requested, current int64) int64 {
	if requested > 0 {
		return requested
	}
	return current
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

func requireCurrency(db *gorm.DB, currencyID string) (*models.Currency, error) {
	if currencyID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency is required")
	}
	var currency models.Currency
	if err := findOne(db, &currency, apperrors.ErrCurrencyNotFound, "id = ?", currencyID); err != nil {
		return nil, err
	}
	return &currency, nil
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// monthYear renders t as "Ocak 2024".
func monthYear(t time.Time) string {
	return turkishMonths[t.Month()-1] + " " + t.Format("2006")
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ownedCurrentAccount loads a counterparty belonging to userID.
func ownedCurrentAccount(db *gorm.DB, userID, accountID string) (*models.CurrentAccount, error) {
	var account models.CurrentAccount
	if err := findOne(db, &account, apperrors.ErrCurrentAccountNotFound,
		"id = ? AND user_id = ?", accountID, userID); err != nil {
		return nil, err
	}
	return &account, nil
}

// cleanText trims s and rejects it when longer than max runes.
func cleanText(s string, max int, field string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is too long")
	}
	return s, nil
}
