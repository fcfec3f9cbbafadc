package dynamodb

import (
	"context"
	"fmt"
	"time"

	"catalog/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const moviesCounter = "movies"

// MovieRepository stores movies in a table keyed by "id" (N). Screening times
// are kept as RFC 3339 strings in UTC.
type MovieRepository struct {
	client API
	table  string
	ids    *Sequence
}

type movieItem struct {
	ID                int64     `dynamodbav:"id"`
	Title             string    `dynamodbav:"title"`
	Director          string    `dynamodbav:"director"`
	Category          string    `dynamodbav:"category"`
	ScreeningFromTime time.Time `dynamodbav:"screening_from_time"`
	ScreeningToTime   time.Time `dynamodbav:"screening_to_time"`
}

func NewMovieRepository(client API, table string, ids *Sequence) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
		ids:    ids,
	}
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (int64, error) {
	defer observe("movies.create")()
	if err := validateTable(r.table); err != nil {
		return 0, err
	}

	id, err := r.ids.Next(ctx, moviesCounter)
	if err != nil {
		return 0, err
	}

	item := toMovieItem(m)
	item.ID = id
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return 0, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return id, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	defer observe("movies.get")()
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return item.toDomain(), nil
}

func (r *MovieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	defer observe("movies.exists")()
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            &r.table,
		Key:                  idKey(id),
		ProjectionExpression: aws.String("id"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	return len(out.Item) > 0, nil
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	defer observe("movies.all")()
	return r.scan(ctx, "", "")
}

func (r *MovieRepository) FindAllByTitle(ctx context.Context, title string) ([]movie.Movie, error) {
	defer observe("movies.find_by_title")()
	return r.scan(ctx, "title", title)
}

func (r *MovieRepository) FindAllByDirector(ctx context.Context, director string) ([]movie.Movie, error) {
	defer observe("movies.find_by_director")()
	return r.scan(ctx, "director", director)
}

func (r *MovieRepository) FindAllByCategory(ctx context.Context, category string) ([]movie.Movie, error) {
	defer observe("movies.find_by_category")()
	return r.scan(ctx, "category", category)
}

func (r *MovieRepository) Update(ctx context.Context, m movie.Movie) (bool, error) {
	defer observe("movies.update")()

	item := toMovieItem(m)
	from, err := attributevalue.Marshal(item.ScreeningFromTime)
	if err != nil {
		return false, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}
	to, err := attributevalue.Marshal(item.ScreeningToTime)
	if err != nil {
		return false, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	return r.update(ctx, m.ID,
		stringAttr("title", item.Title),
		stringAttr("director", item.Director),
		stringAttr("category", item.Category),
		attribute{name: "screening_from_time", value: from},
		attribute{name: "screening_to_time", value: to},
	)
}

func (r *MovieRepository) UpdateTitle(ctx context.Context, id int64, title string) (bool, error) {
	defer observe("movies.update_title")()

	return r.update(ctx, id, stringAttr("title", title))
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	defer observe("movies.delete")()
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &r.table,
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	return true, nil
}

func (r *MovieRepository) update(ctx context.Context, id int64, attrs ...attribute) (bool, error) {
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	_, err := r.client.UpdateItem(ctx, conditionalUpdate(r.table, id, attrs...))
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("dynamodb: update movie: %w", err)
	}
	return true, nil
}

func (r *MovieRepository) scan(ctx context.Context, attribute, value string) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	items, err := scanAll[movieItem](ctx, r.client, r.table, attribute, value)
	if err != nil {
		return nil, err
	}
	sortByID(items, func(i movieItem) int64 { return i.ID })

	movies := make([]movie.Movie, len(items))
	for i, item := range items {
		movies[i] = item.toDomain()
	}
	return movies, nil
}

func toMovieItem(m movie.Movie) movieItem {
	return movieItem{
		ID:                m.ID,
		Title:             m.Title,
		Director:          m.Director,
		Category:          m.Category,
		ScreeningFromTime: m.ScreeningFromTime.UTC(),
		ScreeningToTime:   m.ScreeningToTime.UTC(),
	}
}

func (i movieItem) toDomain() movie.Movie {
	return movie.Movie{
		ID:                i.ID,
		Title:             i.Title,
		Director:          i.Director,
		Category:          i.Category,
		ScreeningFromTime: i.ScreeningFromTime.UTC(),
		ScreeningToTime:   i.ScreeningToTime.UTC(),
	}
}
