package dashboard

import (
	"context"
	"time"

	"github.com/staffsync/staffsync-backend-go/internal/config"
	"github.com/staffsync/staffsync-backend-go/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

const recentEmployeeLimit = 5
const attendanceRecordLimit = 10

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	timezone *time.Location
}

func NewDashboardService(repo dashboard.DashboardRepository, cfg *config.Config) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		timezone:            cfg.App.Timezone,
	}
}

// GetDashboard returns combined dashboard data using parallel
// goroutines, one DB query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	nowLocal := time.Now().In(s.timezone)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	var (
		employeeStats   *dashboard.EmployeeSummaryStats
		attendanceStats *dashboard.AttendanceDayStats
		pendingLeaves   int64
		recentEmployees []dashboard.RecentEmployeeItem
		payrollStats    *dashboard.PayrollStatusStats
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.GetEmployeeSummary(gCtx)
		if err != nil {
			return err
		}
		employeeStats = stats
		return nil
	})

	g.Go(func() error {
		stats, err := s.GetAttendanceStatsByDay(gCtx, today, attendanceRecordLimit)
		if err != nil {
			return err
		}
		attendanceStats = stats
		return nil
	})

	g.Go(func() error {
		count, err := s.CountPendingLeaves(gCtx)
		if err != nil {
			return err
		}
		pendingLeaves = count
		return nil
	})

	g.Go(func() error {
		items, err := s.GetRecentEmployees(gCtx, recentEmployeeLimit)
		if err != nil {
			return err
		}
		recentEmployees = items
		return nil
	})

	g.Go(func() error {
		stats, err := s.GetPayrollStatusStats(gCtx)
		if err != nil {
			return err
		}
		payrollStats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	checkedIn := attendanceStats.Present + attendanceStats.Late
	notCheckedIn := employeeStats.Active - checkedIn - attendanceStats.Absent
	if notCheckedIn < 0 {
		notCheckedIn = 0
	}

	presentPercent := 0.0
	if employeeStats.Active > 0 {
		presentPercent = float64(checkedIn) / float64(employeeStats.Active) * 100
	}

	if recentEmployees == nil {
		recentEmployees = []dashboard.RecentEmployeeItem{}
	}
	records := attendanceStats.Records
	if records == nil {
		records = []dashboard.AttendanceRecordItem{}
	}

	return &dashboard.DashboardResponse{
		EmployeeSummary: dashboard.EmployeeSummaryResponse{
			TotalEmployee:      employeeStats.Total,
			ActiveEmployee:     employeeStats.Active,
			TerminatedEmployee: employeeStats.Terminated,
			Departments:        employeeStats.Departments,
		},
		AttendanceToday: dashboard.AttendanceTodayResponse{
			Present:        attendanceStats.Present,
			Late:           attendanceStats.Late,
			Absent:         attendanceStats.Absent,
			NotCheckedIn:   notCheckedIn,
			Records:        records,
			Date:           today.Format("2006-01-02"),
			PresentPercent: presentPercent,
		},
		PendingLeaves:   pendingLeaves,
		RecentEmployees: recentEmployees,
		PayrollSummary: dashboard.PayrollSummaryResponse{
			DraftCount:     payrollStats.Draft,
			ProcessedCount: payrollStats.Processed,
			PaidCount:      payrollStats.Paid,
		},
	}, nil
}
