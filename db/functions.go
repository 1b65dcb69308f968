package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsertCut stores c, assigning an ID and CreatedAt when they are unset.
// It returns the stored ID.
func InsertCut(db *sql.DB, c Cut) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := db.Exec(InsertCutSQL,
		c.ID, c.URL, nullString(c.VideoID), nullString(c.Title),
		c.StartSeconds, c.EndSeconds, nullString(c.Output),
		c.Status, nullString(c.Error), nullString(c.Quality), c.SizeBytes,
		c.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert cut: %w", err)
	}
	return c.ID, nil
}

// ListCuts returns up to limit cuts, newest first. limit <= 0 returns all.
func ListCuts(db *sql.DB, limit int) ([]Cut, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(SelectCutsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select cuts: %w", err)
	}
	defer rows.Close()

	var cuts []Cut
	for rows.Next() {
		var c Cut
		var videoID, title, output, errText, quality sql.NullString
		var start, end sql.NullInt64
		if err := rows.Scan(&c.ID, &c.URL, &videoID, &title, &start, &end, &output,
			&c.Status, &errText, &quality, &c.SizeBytes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cut: %w", err)
		}
		c.VideoID = videoID.String
		c.Title = title.String
		c.StartSeconds = int(start.Int64)
		c.EndSeconds = int(end.Int64)
		c.Output = output.String
		c.Error = errText.String
		c.Quality = quality.String
		cuts = append(cuts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cuts: %w", err)
	}
	return cuts, nil
}

// ClearCuts deletes every cut and returns how many were removed.
func ClearCuts(db *sql.DB) (int64, error) {
	result, err := db.Exec(DeleteCutsSQL)
	if err != nil {
		return 0, fmt.Errorf("delete cuts: %w", err)
	}
	return result.RowsAffected()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
