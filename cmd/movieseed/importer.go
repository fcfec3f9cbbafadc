package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"catalog/errs"
	"catalog/movie"

	"go.uber.org/zap"
)

const noGenre = "(no genres listed)"

type movieCreator interface {
	CreateMovie(ctx context.Context, m movie.Movie) (int64, error)
}

// importer feeds MovieLens rows through the movie use case so imported
// movies pass the same validation as API writes.
type importer struct {
	movies   movieCreator
	director string
	start    time.Time
	slot     time.Duration
	limit    int
	log      *zap.SugaredLogger
}

type result struct {
	imported int
	skipped  int
}

func (imp importer) run(ctx context.Context, r io.Reader) (result, error) {
	var res result

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return res, err
	}

	for imp.limit <= 0 || res.imported < imp.limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		title, category, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			res.skipped++
			continue
		}

		from := imp.start.Add(time.Duration(res.imported) * imp.slot)
		id, err := imp.movies.CreateMovie(ctx, movie.Movie{
			Title:             title,
			Director:          imp.director,
			Category:          category,
			ScreeningFromTime: from,
			ScreeningToTime:   from.Add(imp.slot),
		})
		if errs.Is(err, errs.EINVALID) {
			imp.log.Warnw("skipping row", "title", title, "reason", errs.ErrorMessage(err))
			res.skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create %q: %w", title, err)
		}

		imp.log.Debugw("imported movie", "id", id, "title", title)
		res.imported++
	}

	return res, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

// parseMovieRecord returns the title and the first listed genre, which
// becomes the category. Rows without a genre are filed as "Uncategorized".
func parseMovieRecord(record []string, idxTitle, idxGenres int) (string, string, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return "", "", false
	}

	title := strings.TrimSpace(record[idxTitle])
	if title == "" {
		return "", "", false
	}

	category := strings.TrimSpace(strings.SplitN(record[idxGenres], "|", 2)[0])
	if category == "" || category == noGenre {
		category = "Uncategorized"
	}
	return title, category, true
}
