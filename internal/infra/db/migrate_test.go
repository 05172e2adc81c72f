package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var errMissingPrivilege = errors.New("permission denied to create extension")

func TestMigrateUp(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = conn.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_published_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_category").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_language").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_title_gin").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_summary_gin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMigrateUp_SearchIndexFailureIgnored(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer func() { _ = conn.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_published_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_category").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_articles_language").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnError(errMissingPrivilege)
	mock.ExpectExec("idx_articles_title_gin").
		WillReturnError(errMissingPrivilege)
	mock.ExpectExec("idx_articles_summary_gin").
		WillReturnError(errMissingPrivilege)

	if err := MigrateUp(conn); err != nil {
		t.Fatalf("MigrateUp() error = %v, want nil when trgm indexes fail", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
