package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"sync"
	"time"

	"staffpulse/internal/model"
	"staffpulse/internal/store"
	"staffpulse/pkg/errors"
)

type ReportService struct {
	checkins  *store.CheckinStore
	employees *store.EmployeeStore
}

var (
	reportService     *ReportService
	reportServiceOnce sync.Once
)

func GetReportService() *ReportService {
	reportServiceOnce.Do(func() {
		reportService = &ReportService{
			checkins:  store.GetCheckinStore(),
			employees: store.GetEmployeeStore(),
		}
	})
	return reportService
}

// ExportCheckinsCSV streams the org's check-in history for [from, to]
// as CSV. Gated behind the plan's export flag.
func (s *ReportService) ExportCheckinsCSV(ctx context.Context, org *model.Organization, from, to time.Time, w io.Writer) error {
	if !LimitsFor(org.Plan).CSVExport {
		return errors.PlanFeatureUnavailable
	}

	checkins, err := s.checkins.ListByOrganization(ctx, org.ID, from, to)
	if err != nil {
		return err
	}

	employees, _, err := s.employees.ListByOrganization(ctx, org.ID, 10000, 0)
	if err != nil {
		return err
	}
	names := make(map[int64]model.Employee, len(employees))
	for _, e := range employees {
		names[e.ID] = e
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "employee", "department", "mood_score", "comment", "channel"}); err != nil {
		return err
	}

	for _, c := range checkins {
		employee := names[c.EmployeeID]
		department := ""
		if employee.Department != nil {
			department = *employee.Department
		}
		row := []string{
			c.CheckinDate.Format("2006-01-02"),
			employee.FullName,
			department,
			strconv.Itoa(int(c.MoodScore)),
			c.Comment,
			c.Channel,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
