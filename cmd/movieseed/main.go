package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"moviebox/pkg/config"
	"moviebox/postgres"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

// MovieLens titles carry the release year as a suffix, e.g. "Heat (1995)".
var yearSuffix = regexp.MustCompile(`^(.*)\((\d{4})\)\s*$`)

func main() {
	var (
		csvPath string
		zipURL  string
		userID  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.StringVar(&userID, "user", "", "Owner user id for the imported movies (required)")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if strings.TrimSpace(userID) == "" {
		slog.Error("missing required -user flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	count, skipped, err := importMovies(context.Background(), db, csvPath, userID, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count, "skipped", skipped, "user", userID)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

func importMovies(ctx context.Context, db *gorm.DB, csvPath, userID string, limit int) (int, int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idxTitle, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, 0, err
	}

	stmt := `INSERT INTO movies (title, publishing_year, user_id) VALUES (?, ?, ?)`

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, 0, tx.Error
	}

	count, skipped := 0, 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = tx.Rollback()
			return count, skipped, err
		}

		title, year, ok := parseMovieRecord(record, idxTitle)
		if !ok {
			skipped++
			continue
		}

		if err := tx.Exec(stmt, title, year, userID).Error; err != nil {
			_ = tx.Rollback()
			return count, skipped, err
		}

		count++
	}

	if err := tx.Commit().Error; err != nil {
		return count, skipped, err
	}

	return count, skipped, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, err
	}

	for i, name := range header {
		if strings.TrimSpace(name) == "title" {
			return i, nil
		}
	}
	return 0, errors.New("missing title column in csv header")
}

// parseMovieRecord splits "Heat (1995)" into title and year. Rows without
// a year suffix are skipped rather than imported with a bogus year.
func parseMovieRecord(record []string, idxTitle int) (string, int, bool) {
	if idxTitle >= len(record) {
		return "", 0, false
	}

	m := yearSuffix.FindStringSubmatch(strings.TrimSpace(record[idxTitle]))
	if m == nil {
		return "", 0, false
	}

	title := strings.TrimSpace(m[1])
	year, err := strconv.Atoi(m[2])
	if err != nil || title == "" {
		return "", 0, false
	}

	return title, year, true
}
