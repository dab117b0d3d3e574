package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/domain/attendance"
	"github.com/staffsync/staffsync-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Create_Success(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "att-create@example.com", "Engineering", decimal.NewFromInt(3000))
	repo := postgresql.NewAttendanceRepository(testDB)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: strPtr("09:00"),
		Status:      attendance.StatusPresent,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, employeeID, created.EmployeeID)
	require.NotNil(t, created.CheckInTime)
	assert.Equal(t, "09:00", *created.CheckInTime)
	assert.Nil(t, created.CheckOutTime)
}

func TestAttendanceRepository_Create_DuplicateDay(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "att-dup@example.com", "Engineering", decimal.NewFromInt(3000))
	repo := postgresql.NewAttendanceRepository(testDB)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	record := attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: strPtr("09:00"),
		Status:      attendance.StatusPresent,
	}

	_, err := repo.Create(ctx, record)
	require.NoError(t, err)

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceRepository_GetByEmployeeAndDate(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "att-get@example.com", "Engineering", decimal.NewFromInt(3000))
	repo := postgresql.NewAttendanceRepository(testDB)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	missing, err := repo.GetByEmployeeAndDate(ctx, employeeID, date)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: strPtr("08:30"),
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	found, err := repo.GetByEmployeeAndDate(ctx, employeeID, date)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.CheckInTime)
	assert.Equal(t, "08:30", *found.CheckInTime)
}

func TestAttendanceRepository_Update_SetsCheckOut(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "att-update@example.com", "Engineering", decimal.NewFromInt(3000))
	repo := postgresql.NewAttendanceRepository(testDB)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: strPtr("09:00"),
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	created.CheckOutTime = strPtr("18:30")
	created.TotalHours = decimal.NewFromFloat(9.5)
	created.OvertimeHours = decimal.NewFromFloat(1.5)
	err = repo.Update(ctx, created)
	require.NoError(t, err)

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOutTime)
	assert.Equal(t, "18:30", *updated.CheckOutTime)
	assert.True(t, updated.TotalHours.Equal(decimal.NewFromFloat(9.5)))
	assert.True(t, updated.OvertimeHours.Equal(decimal.NewFromFloat(1.5)))
}

func TestAttendanceRepository_Upsert_OverwritesSameDay(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "att-upsert@example.com", "Engineering", decimal.NewFromInt(3000))
	repo := postgresql.NewAttendanceRepository(testDB)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	first, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: strPtr("09:00"),
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID:    employeeID,
		Date:          date,
		CheckInTime:   strPtr("09:30"),
		CheckOutTime:  strPtr("18:00"),
		TotalHours:    decimal.NewFromFloat(8.5),
		OvertimeHours: decimal.NewFromFloat(0.5),
		Status:        attendance.StatusLate,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StatusLate, second.Status)
	require.NotNil(t, second.CheckInTime)
	assert.Equal(t, "09:30", *second.CheckInTime)

	records, total, err := repo.GetMyAttendance(ctx, employeeID, attendance.MyAttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_GetByID_NotFound(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewAttendanceRepository(testDB)
	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_SumOvertimeHours(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "att-ot@example.com", "Engineering", decimal.NewFromInt(3000))
	repo := postgresql.NewAttendanceRepository(testDB)

	days := []struct {
		date     time.Time
		overtime decimal.Decimal
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(1.5)},
		{time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(2.0)},
		// Outside the summed period
		{time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromFloat(4.0)},
	}
	for _, d := range days {
		_, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID:    employeeID,
			Date:          d.date,
			CheckInTime:   strPtr("09:00"),
			CheckOutTime:  strPtr("18:00"),
			TotalHours:    decimal.NewFromInt(8).Add(d.overtime),
			OvertimeHours: d.overtime,
			Status:        attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	total, err := repo.SumOvertimeHours(ctx, employeeID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(3.5)), "got %s", total)
}

func TestAttendanceRepository_List_Filters(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	firstID := createTestEmployee(t, ctx, "att-list-1@example.com", "Engineering", decimal.NewFromInt(3000))
	secondID := createTestEmployee(t, ctx, "att-list-2@example.com", "Sales", decimal.NewFromInt(2500))
	repo := postgresql.NewAttendanceRepository(testDB)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID:  firstID,
		Date:        date,
		CheckInTime: strPtr("09:00"),
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID:  secondID,
		Date:        date,
		CheckInTime: strPtr("10:00"),
		Status:      attendance.StatusLate,
	})
	require.NoError(t, err)

	records, total, err := repo.List(ctx, attendance.AttendanceFilter{Status: strPtr("late")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, secondID, records[0].EmployeeID)
	require.NotNil(t, records[0].EmployeeName)
	assert.Equal(t, "Test Employee", *records[0].EmployeeName)

	records, total, err = repo.List(ctx, attendance.AttendanceFilter{EmployeeID: &firstID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, firstID, records[0].EmployeeID)
}
