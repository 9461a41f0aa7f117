package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "credit_balance", "generation_count", "created_at", "updated_at"}
}

func TestFindByEmailMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := NewUserRepository(db).FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByIDScansUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM users WHERE id").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u1", "Alice", "alice@example.com", "hash", 5, 0, now, now))

	user, err := NewUserRepository(db).FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if user == nil || user.Email != "alice@example.com" || user.CreditBalance != 5 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestDebitCreditApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := NewUserRepository(db).DebitCredit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("debit credit: %v", err)
	}
	if !ok {
		t.Fatal("expected debit to be applied")
	}
}

func TestDebitCreditRefusedAtZeroBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	// The conditional WHERE clause matches no rows at zero balance.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := NewUserRepository(db).DebitCredit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("debit credit: %v", err)
	}
	if ok {
		t.Fatal("expected debit to be refused")
	}
}

func TestAddCredits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET credit_balance = credit_balance + ?")).
		WithArgs(100, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewUserRepository(db).AddCredits(context.Background(), "u1", 100); err != nil {
		t.Fatalf("add credits: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
