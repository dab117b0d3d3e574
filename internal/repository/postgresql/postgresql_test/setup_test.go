package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// requireTestDB connects to the database named by TEST_DATABASE_URL and
// applies migrations. Tests that need a database skip when the variable
// is unset.
func requireTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		db, err := database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
		if err := database.Migrate(db); err != nil {
			panic("Failed to migrate test database: " + err.Error())
		}
		testDB = db
	})

	return testDB
}

// truncateTables resets all tables between tests. Order respects
// foreign keys even though CASCADE would cover it.
func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{
		"leave_requests",
		"payroll_records",
		"payroll_settings",
		"attendance_records",
		"users",
		"employees",
	}

	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

// createTestEmployee inserts an active employee and returns its id.
func createTestEmployee(t *testing.T, ctx context.Context, email, department string, baseSalary decimal.Decimal) string {
	t.Helper()

	var employeeID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (first_name, last_name, email, department, base_salary, status)
		VALUES ('Test', 'Employee', $1, $2, $3, 'active')
		RETURNING id
	`, email, department, baseSalary).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func strPtr(s string) *string {
	return &s
}
