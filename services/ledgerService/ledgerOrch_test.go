package ledgerService

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})

	return gormDB, mock, err
}

func userRow(balance int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "discord_id", "guild_id", "balance", "username"}).
		AddRow(1, "user1", "guild1", balance, "tuco")
}

func TestGetBalanceExistingUser(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(250))

	balance, err := GetBalance(db, "guild1", "user1", "tuco", DefaultStartingBalance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 250 {
		t.Errorf("expected balance 250, got %d", balance)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddBalanceAppliesDelta(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(100))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := AddBalance(db, "guild1", "user1", "tuco", DefaultStartingBalance, -30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 70 {
		t.Errorf("expected balance 70, got %d", balance)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddBalanceClampsAtZero(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(10))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := AddBalance(db, "guild1", "user1", "tuco", DefaultStartingBalance, -50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 0 {
		t.Errorf("a loss may not drive the ledger negative: got %d", balance)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetBalanceClampsNegative(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(40))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := SetBalance(db, "guild1", "user1", "tuco", DefaultStartingBalance, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 0 {
		t.Errorf("expected clamped balance 0, got %d", balance)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
