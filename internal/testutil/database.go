package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB creates a connection to the test database
// This connects to the local lims_test database
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := "host=localhost port=5432 user=localadmin password=Stoplying! dbname=lims_test sslmode=disable TimeZone=Asia/Kolkata"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if _, err := db.Exec("SET TIME ZONE 'Asia/Kolkata'"); err != nil {
		t.Fatalf("Failed to set test database timezone: %v", err)
	}

	return db
}

// SetupTestTransaction creates a test database connection and begins a transaction
// The transaction is automatically rolled back when the test ends
// This ensures test isolation without needing cleanup
func SetupTestTransaction(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	db := SetupTestDB(t)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		db.Close()
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	// Ensure transaction is rolled back when test ends
	t.Cleanup(func() {
		tx.Rollback()
		db.Close()
	})

	return db, tx
}

// CleanupTestDB cleans up test data from the database
// Use this if you're not using transactions
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	// Child tables cascade from patients; facility and catalog tables are
	// truncated separately because registrations reference them.
	tables := []string{
		"lims.patients",
		"lims.investigations",
		"lims.nodals",
		"lims.hospitals",
	}
	for _, table := range tables {
		if _, err := db.Exec("TRUNCATE TABLE " + table + " CASCADE"); err != nil {
			t.Logf("Warning: Failed to clean up %s: %v", table, err)
		}
	}
}

// CreateTestHospital creates a hospital row and returns its ID
func CreateTestHospital(t *testing.T, db *sql.DB, name, city string) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO lims.hospitals (hospital_name, city, state, address, phone, email, status, created_at)
		VALUES ($1, $2, 'Telangana', '12 Test Road', '9000000000', 'lab@example.com', 'active', NOW())
		RETURNING id
	`
	if err := db.QueryRow(query, name, city).Scan(&id); err != nil {
		t.Fatalf("Failed to create test hospital: %v", err)
	}
	return id
}

// CreateTestNodal creates a nodal under the given hospital and returns its ID
func CreateTestNodal(t *testing.T, db *sql.DB, hospitalID int64, name string) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO lims.nodals (hospital_id, nodal_name, city, state, address, phone, email, status, created_at)
		VALUES ($1, $2, 'Hyderabad', 'Telangana', '3 Node Street', '9000000001', 'node@example.com', 'active', NOW())
		RETURNING id
	`
	if err := db.QueryRow(query, hospitalID, name).Scan(&id); err != nil {
		t.Fatalf("Failed to create test nodal: %v", err)
	}
	return id
}

// CreateTestInvestigation creates a catalog entry and returns its ID
func CreateTestInvestigation(t *testing.T, db *sql.DB, code, name, collection string, price float64) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO lims.investigations (test_code, testname, department, sample_type, price, test_collection, status, created_at)
		VALUES ($1, $2, 'Pathology', 'Blood', $3, $4, 'active', NOW())
		RETURNING id
	`
	if err := db.QueryRow(query, code, name, price, collection).Scan(&id); err != nil {
		t.Fatalf("Failed to create test investigation: %v", err)
	}
	return id
}
