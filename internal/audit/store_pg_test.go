package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rec := Record{
		ID:        "rec-1",
		Query:     "compare Wakad vs Baner",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(`INSERT INTO query_log`).
		WithArgs(rec.ID, rec.Query, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &PGStore{DB: db}
	if err := store.Add(context.Background(), rec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "query", "created_at"}).
		AddRow("rec-2", "newer", now).
		AddRow("rec-1", "older", now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT id, query, created_at FROM query_log`).
		WithArgs(2).
		WillReturnRows(rows)

	store := &PGStore{DB: db}
	got, err := store.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Query != "newer" || got[1].Query != "older" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreRecentDefaultsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, query, created_at FROM query_log`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "query", "created_at"}))

	store := &PGStore{DB: db}
	if _, err := store.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
