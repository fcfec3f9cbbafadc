package movie

import "context"

type Service interface {
	ListMovies(ctx context.Context, f Filter) ([]Movie, error)
	CreateMovie(ctx context.Context, m Movie) (int64, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	UpdateMovie(ctx context.Context, m Movie) error
	UpdateTitle(ctx context.Context, id int64, title string) error
	DeleteMovie(ctx context.Context, id int64) error
}

// Repository is the persistence port. Mutations report false when no movie
// with the given id exists.
type Repository interface {
	AllMovies(ctx context.Context) ([]Movie, error)
	FindAllByTitle(ctx context.Context, title string) ([]Movie, error)
	FindAllByDirector(ctx context.Context, director string) ([]Movie, error)
	FindAllByCategory(ctx context.Context, category string) ([]Movie, error)
	CreateMovie(ctx context.Context, m Movie) (int64, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, m Movie) (bool, error)
	UpdateTitle(ctx context.Context, id int64, title string) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// ListMovies dispatches on the first non-blank text filter, in the order
// title, director, category. The screening window is not applied.
// TODO: apply ScreeningFrom/ScreeningTo once the intended semantics
// (overlap vs containment) are confirmed with API consumers.
func (uc *Usecase) ListMovies(ctx context.Context, f Filter) ([]Movie, error) {
	switch {
	case !isBlank(f.Title):
		return uc.r.FindAllByTitle(ctx, f.Title)
	case !isBlank(f.Director):
		return uc.r.FindAllByDirector(ctx, f.Director)
	case !isBlank(f.Category):
		return uc.r.FindAllByCategory(ctx, f.Category)
	default:
		return uc.r.AllMovies(ctx)
	}
}

func (uc *Usecase) CreateMovie(ctx context.Context, m Movie) (int64, error) {
	if m.ID != 0 {
		return 0, ErrIDNotAllowed
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return uc.r.CreateMovie(ctx, m)
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

// UpdateMovie replaces every mutable field. Existence is checked before the
// payload is validated, so an unknown id is reported as not found even when
// the payload is incomplete.
func (uc *Usecase) UpdateMovie(ctx context.Context, m Movie) error {
	if err := uc.mustExist(ctx, m.ID); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	ok, err := uc.r.Update(ctx, m)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMovieNotFound
	}
	return nil
}

func (uc *Usecase) UpdateTitle(ctx context.Context, id int64, title string) error {
	if err := uc.mustExist(ctx, id); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	ok, err := uc.r.UpdateTitle(ctx, id, title)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMovieNotFound
	}
	return nil
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) error {
	ok, err := uc.r.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMovieNotFound
	}
	return nil
}

func (uc *Usecase) mustExist(ctx context.Context, id int64) error {
	exists, err := uc.r.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrMovieNotFound
	}
	return nil
}
