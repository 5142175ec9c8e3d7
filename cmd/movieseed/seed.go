package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"smdb/movie"
)

const noGenres = "(no genres listed)"

// MovieLens titles carry the release year as a trailing "(YYYY)".
var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

type seedStats struct {
	Imported int
	Skipped  int
}

// importMovies reads MovieLens movies.csv rows and creates them through svc.
// Rows the service rejects are skipped; a storage failure stops the import.
func importMovies(ctx context.Context, svc movie.Service, r io.Reader, limit int) (seedStats, error) {
	var stats seedStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return stats, err
	}

	for limit <= 0 || stats.Imported < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		m, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			stats.Skipped++
			continue
		}

		res := svc.CreateMovie(ctx, m)
		if res.IsOK() {
			stats.Imported++
			continue
		}
		if res.StatusCode() >= http.StatusInternalServerError {
			return stats, fmt.Errorf("create movie %s: %w", m, res.Err())
		}
		slog.Debug("skipping movie", "movie", m.String(), "error", res.Err())
		stats.Skipped++
	}

	return stats, nil
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

func parseMovieRecord(record []string, idxTitle, idxGenres int) (*movie.Movie, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return nil, false
	}

	title, year, ok := parseTitle(record[idxTitle])
	if !ok {
		return nil, false
	}
	return &movie.Movie{
		ID:          movie.UnsetID,
		Title:       title,
		Year:        year,
		Description: describeGenres(record[idxGenres]),
	}, true
}

// parseTitle splits "Toy Story (1995)" into its title and year.
func parseTitle(raw string) (string, int, bool) {
	match := titleYear.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", 0, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return match[1], year, true
}

func describeGenres(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return ""
	}
	return strings.Join(strings.Split(raw, "|"), ", ")
}
