package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID                int64     `gorm:"primaryKey"`
	Title             string    `gorm:"not null"`
	Director          string    `gorm:"not null"`
	Category          string    `gorm:"not null"`
	ScreeningFromTime time.Time `gorm:"column:screening_from_time;not null"`
	ScreeningToTime   time.Time `gorm:"column:screening_to_time;not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	defer observe("movies.all")()
	return r.findAll(ctx, "", "")
}

func (r *MovieRepository) FindAllByTitle(ctx context.Context, title string) ([]movie.Movie, error) {
	defer observe("movies.find_by_title")()
	return r.findAll(ctx, "title", title)
}

func (r *MovieRepository) FindAllByDirector(ctx context.Context, director string) ([]movie.Movie, error) {
	defer observe("movies.find_by_director")()
	return r.findAll(ctx, "director", director)
}

func (r *MovieRepository) FindAllByCategory(ctx context.Context, category string) ([]movie.Movie, error) {
	defer observe("movies.find_by_category")()
	return r.findAll(ctx, "category", category)
}

// CreateMovie inserts m and returns the generated id.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (int64, error) {
	defer observe("movies.create")()

	model := toModelMovie(m)
	model.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		return 0, translateMovieError(err)
	}
	return model.ID, nil
}

// GetByID fetches a movie by id.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	defer observe("movies.get")()

	var model MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	defer observe("movies.exists")()

	var count int64
	err := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update loads the movie and overwrites every mutable field in one
// transaction.
func (r *MovieRepository) Update(ctx context.Context, m movie.Movie) (bool, error) {
	defer observe("movies.update")()

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.Where("id = ?", m.ID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return tx.Model(&model).Updates(map[string]interface{}{
			"title":               m.Title,
			"director":            m.Director,
			"category":            m.Category,
			"screening_from_time": m.ScreeningFromTime.UTC(),
			"screening_to_time":   m.ScreeningToTime.UTC(),
		}).Error
	})
	if err != nil {
		return false, translateMovieError(err)
	}
	return found, nil
}

func (r *MovieRepository) UpdateTitle(ctx context.Context, id int64, title string) (bool, error) {
	defer observe("movies.update_title")()

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return tx.Model(&model).Update("title", title).Error
	})
	if err != nil {
		return false, translateMovieError(err)
	}
	return found, nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	defer observe("movies.delete")()

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&MovieModel{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *MovieRepository) findAll(ctx context.Context, column, value string) ([]movie.Movie, error) {
	query := r.db.WithContext(ctx).Order("id")
	if column != "" {
		query = query.Where(column+" = ?", value)
	}

	var models []MovieModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

func translateMovieError(err error) error {
	if _, constraint, ok := constraintViolation(err); ok {
		return fmt.Errorf("%w: %s", movie.ErrConstraintViolated, constraint)
	}
	return err
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:                model.ID,
		Title:             model.Title,
		Director:          model.Director,
		Category:          model.Category,
		ScreeningFromTime: model.ScreeningFromTime.UTC(),
		ScreeningToTime:   model.ScreeningToTime.UTC(),
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:                m.ID,
		Title:             m.Title,
		Director:          m.Director,
		Category:          m.Category,
		ScreeningFromTime: m.ScreeningFromTime.UTC(),
		ScreeningToTime:   m.ScreeningToTime.UTC(),
	}
}
