package database

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kasatakip/internal/logger"
	"kasatakip/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedData is the reference data shipped with the application.
type SeedData struct {
	Currencies []SeedCurrency `yaml:"currencies"`
	Banks      []string       `yaml:"banks"`
}

// SeedCurrency is one currency entry of the seed file.
type SeedCurrency struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// LoadSeedData parses raw YAML, falling back to the embedded file when raw is empty.
func LoadSeedData(raw []byte) (*SeedData, error) {
	if len(raw) == 0 {
		raw = seedYAML
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// Seed inserts currencies and banks that are not present yet. Existing rows
// are matched by name, so running it twice is harmless.
func Seed(db *gorm.DB, data *SeedData) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range data.Currencies {
			var count int64
			if err := tx.Model(&models.Currency{}).Where("name = ?", c.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&models.Currency{Name: c.Name, Symbol: c.Symbol}).Error; err != nil {
				return err
			}
		}

		if len(data.Banks) > 0 {
			banks := make([]models.Bank, 0, len(data.Banks))
			for _, name := range data.Banks {
				banks = append(banks, models.Bank{Name: name})
			}
			// banks.name is unique
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&banks).Error; err != nil {
				return err
			}
		}

		logger.Get().Infow("reference data seeded",
			"currencies", len(data.Currencies),
			"banks", len(data.Banks),
		)
		return nil
	})
}
