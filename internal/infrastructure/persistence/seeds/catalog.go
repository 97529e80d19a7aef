package seeds

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"coursekit/internal/infrastructure/persistence/models"
	"coursekit/internal/shared/biztime"
)

//go:embed catalog.yaml
var catalogYAML []byte

type seedLesson struct {
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type seedCourse struct {
	Slug        string       `yaml:"slug"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	PriceCents  int64        `yaml:"price_cents"`
	Published   bool         `yaml:"published"`
	Lessons     []seedLesson `yaml:"lessons"`
}

type seedCatalog struct {
	Courses []seedCourse `yaml:"courses"`
}

// SeedCatalog inserts the demo course catalog. Courses already present by
// slug are left untouched, so re-running the seeder is safe.
func SeedCatalog(db *gorm.DB) error {
	var catalog seedCatalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	now := biztime.NowUTC()
	for _, sc := range catalog.Courses {
		var count int64
		if err := db.Model(&models.CourseModel{}).Where("slug = ?", sc.Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing course %q: %w", sc.Slug, err)
		}
		if count > 0 {
			continue
		}

		model := models.CourseModel{
			Slug:        sc.Slug,
			Title:       sc.Title,
			Description: sc.Description,
			PriceCents:  sc.PriceCents,
			Published:   sc.Published,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for i, sl := range sc.Lessons {
			model.Lessons = append(model.Lessons, models.LessonModel{
				Slug:      sl.Slug,
				Title:     sl.Title,
				ContentMD: sl.Content,
				Position:  i + 1,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		if err := db.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to seed course %q: %w", sc.Slug, err)
		}
	}

	return nil
}
