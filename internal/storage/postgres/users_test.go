package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
)

func TestUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	createdAt := time.Now()
	user := &model.User{ID: "u1", Name: "Asha", Email: "asha@example.com", PasswordHash: "hash", CreatedAt: createdAt}

	mock.ExpectExec("INSERT INTO users").WithArgs("u1", "Asha", "asha@example.com", "hash", createdAt).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO users").WithArgs("u1", "Asha", "asha@example.com", "hash", createdAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if err := repo.Create(context.Background(), user); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectExec("INSERT INTO users").WithArgs("u1", "Asha", "asha@example.com", "hash", createdAt).
		WillReturnError(errors.New("other"))
	if err := repo.Create(context.Background(), user); err == nil {
		t.Fatal("expected error")
	}

	columns := []string{"id", "name", "email", "password_hash", "created_at"}
	mock.ExpectQuery("FROM users WHERE email=").WithArgs("asha@example.com").WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("u1", "Asha", "asha@example.com", "hash", createdAt))
	got, err := repo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil || got.ID != "u1" || got.Name != "Asha" {
		t.Fatalf("unexpected user: %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(context.Background(), "missing@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("u1").WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("u1", "Asha", "asha@example.com", "hash", createdAt))
	if _, err := repo.GetByID(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("u2").WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), "u2"); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected raw error, got %v", err)
	}

	expectMet(t, mock)
}
