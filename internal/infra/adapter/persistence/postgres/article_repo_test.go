package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"globalpulse/internal/domain/entity"
	pg "globalpulse/internal/infra/adapter/persistence/postgres"
	"globalpulse/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var articleCols = []string{
	"id", "title", "summary", "content", "url", "image_url",
	"source", "category", "language", "published_at", "location", "created_at",
}

func artRow(a *entity.Article) *sqlmock.Rows {
	return artRows(a)
}

func artRows(articles ...*entity.Article) *sqlmock.Rows {
	rows := sqlmock.NewRows(articleCols)
	for _, a := range articles {
		var location interface{}
		if a.Location != nil {
			location = []byte(`{"lat":` + floatStr(a.Location.Lat) + `,"lng":` + floatStr(a.Location.Lng) + `,"label":"` + a.Location.Label + `"}`)
		}
		rows.AddRow(
			a.ID, a.Title, a.Summary, a.Content, a.URL, a.ImageURL,
			a.Source, string(a.Category), string(a.Language), a.PublishedAt, location, a.CreatedAt,
		)
	}
	return rows
}

func floatStr(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func sampleArticle(now time.Time) *entity.Article {
	return &entity.Article{
		ID:          1,
		Title:       "Central bank raises rates",
		Summary:     "The central bank raised interest rates again.",
		Content:     "Full article body.",
		URL:         "https://example.com/articles/1",
		ImageURL:    "https://example.com/img/1.jpg",
		Source:      "Example News",
		Category:    entity.CategoryEconomy,
		Language:    entity.LanguageEnglish,
		PublishedAt: now,
		Location:    &entity.Location{Lat: 10.5, Lng: -20.25, Label: "News Location"},
		CreatedAt:   now,
	}
}

/* ─────────────────────────── Get ─────────────────────────── */

func TestArticleRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	want := sampleArticle(now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(artRow(want))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v, want nil for missing row", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil", got)
	}
}

/* ─────────────────────────── List ─────────────────────────── */

func TestArticleRepo_List_NoFilters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM articles").
		WithArgs(50).
		WillReturnRows(artRows(sampleArticle(now)))

	repo := pg.NewArticleRepo(db)
	got, err := repo.List(context.Background(), repository.ArticleFilters{})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_List_CategoryAndLanguage(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").
		WithArgs("Economy", "en", 10).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	category := entity.CategoryEconomy
	language := entity.LanguageEnglish
	got, err := repo.List(context.Background(), repository.ArticleFilters{
		Category: &category,
		Language: &language,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("List len=%d, want 0", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_List_SearchEscapesPattern(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("ILIKE").
		WithArgs(`%100\% rate%`, 50).
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(db)
	_, err := repo.List(context.Background(), repository.ArticleFilters{Search: "100% rate"})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── UpsertBatch ─────────────────────────── */

func TestArticleRepo_UpsertBatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	fresh := sampleArticle(now)
	dup := sampleArticle(now)
	dup.URL = "https://example.com/articles/dup"

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO articles"))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0)) // conflict, skipped
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	res, err := repo.UpsertBatch(context.Background(), []*entity.Article{fresh, dup})
	if err != nil {
		t.Fatalf("UpsertBatch err=%v", err)
	}
	if res.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", res.Inserted)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_UpsertBatch_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewArticleRepo(db)
	res, err := repo.UpsertBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpsertBatch err=%v", err)
	}
	if res.Inserted != 0 || res.Skipped != 0 {
		t.Errorf("result = %+v, want zero", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_UpsertBatch_RollbackOnError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO articles"))
	prep.ExpectExec().WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	if _, err := repo.UpsertBatch(context.Background(), []*entity.Article{sampleArticle(now)}); err == nil {
		t.Fatal("UpsertBatch err=nil, want insert error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── ExistsByURLBatch ─────────────────────────── */

func TestArticleRepo_ExistsByURLBatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE url = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).AddRow("https://example.com/a"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.ExistsByURLBatch(context.Background(), []string{
		"https://example.com/a",
		"https://example.com/b",
	})
	if err != nil {
		t.Fatalf("ExistsByURLBatch err=%v", err)
	}
	if !got["https://example.com/a"] {
		t.Error("existing URL reported as missing")
	}
	if got["https://example.com/b"] {
		t.Error("missing URL reported as existing")
	}
}

func TestArticleRepo_ExistsByURLBatch_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewArticleRepo(db)
	got, err := repo.ExistsByURLBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExistsByURLBatch err=%v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── CountArticles ─────────────────────────── */

func TestArticleRepo_CountArticles(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := pg.NewArticleRepo(db)
	count, err := repo.CountArticles(context.Background())
	if err != nil {
		t.Fatalf("CountArticles err=%v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}
