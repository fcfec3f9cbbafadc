package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"catalog/movie"
	"catalog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreateMovie(ctx context.Context, mv movie.Movie) (int64, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(int64), args.Error(1)
}

const sampleCSV = `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children
2,"American President, The (1995)",Comedy|Drama|Romance
3,,Drama
4,Hellraiser: Judgment (2018),(no genres listed)
`

var seedStart = time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

func newImporter(svc movieCreator, limit int) importer {
	return importer{
		movies:   svc,
		director: "unknown",
		start:    seedStart,
		slot:     2 * time.Hour,
		limit:    limit,
		log:      logger.NOOPLogger,
	}
}

func TestImporter_Run(t *testing.T) {
	svc := new(mockCreator)
	svc.On("CreateMovie", mock.Anything, movie.Movie{
		Title:             "Toy Story (1995)",
		Director:          "unknown",
		Category:          "Adventure",
		ScreeningFromTime: seedStart,
		ScreeningToTime:   seedStart.Add(2 * time.Hour),
	}).Return(int64(1), nil).Once()
	svc.On("CreateMovie", mock.Anything, movie.Movie{
		Title:             "American President, The (1995)",
		Director:          "unknown",
		Category:          "Comedy",
		ScreeningFromTime: seedStart.Add(2 * time.Hour),
		ScreeningToTime:   seedStart.Add(4 * time.Hour),
	}).Return(int64(2), nil).Once()
	svc.On("CreateMovie", mock.Anything, mock.MatchedBy(func(m movie.Movie) bool {
		return m.Category == "Uncategorized"
	})).Return(int64(3), nil).Once()

	res, err := newImporter(svc, 0).run(context.Background(), strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, 3, res.imported)
	assert.Equal(t, 1, res.skipped)
	svc.AssertExpectations(t)
}

func TestImporter_Limit(t *testing.T) {
	svc := new(mockCreator)
	svc.On("CreateMovie", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

	res, err := newImporter(svc, 1).run(context.Background(), strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, 1, res.imported)
	svc.AssertNumberOfCalls(t, "CreateMovie", 1)
}

func TestImporter_SkipsInvalidMovies(t *testing.T) {
	svc := new(mockCreator)
	svc.On("CreateMovie", mock.Anything, mock.Anything).Return(int64(0), movie.ErrInvalidTitle)

	res, err := newImporter(svc, 0).run(context.Background(), strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, 0, res.imported)
	assert.Equal(t, 4, res.skipped)
}

func TestImporter_StopsOnStorageError(t *testing.T) {
	svc := new(mockCreator)
	svc.On("CreateMovie", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset")).Once()

	res, err := newImporter(svc, 0).run(context.Background(), strings.NewReader(sampleCSV))

	assert.ErrorContains(t, err, "Toy Story")
	assert.Equal(t, 0, res.imported)
}

func TestImporter_MissingColumns(t *testing.T) {
	_, err := newImporter(new(mockCreator), 0).run(context.Background(), strings.NewReader("movieId,name\n1,x\n"))

	assert.EqualError(t, err, "missing required columns in csv header")
}
