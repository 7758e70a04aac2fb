package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
)

type metricsRepository struct {
	s *Store
}

func (r *metricsRepository) SumAttendanceHours(ctx context.Context, employeeID string, from, to time.Time) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var total float64
	for _, session := range r.s.sessions {
		if session.EmployeeID != employeeID || session.TotalHours == nil {
			continue
		}
		if !session.ClockIn.Before(from) && session.ClockIn.Before(to) {
			total += *session.TotalHours
		}
	}
	return total, nil
}

func (r *metricsRepository) CountCompletedTasks(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, t := range r.s.tasks {
		if t.EmployeeID != employeeID || t.Status != task.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		if !t.CompletedAt.Before(from) && t.CompletedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *metricsRepository) UpsertDaily(ctx context.Context, m metrics.PerformanceMetric) (metrics.PerformanceMetric, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[m.EmployeeID]; !ok {
		return metrics.PerformanceMetric{}, metrics.ErrEmployeeNotFound
	}

	m.UpdatedAt = r.s.Now()
	r.s.daily[metricKey{m.EmployeeID, m.MetricDate.Format(time.DateOnly)}] = m
	return m, nil
}

func inRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

func (r *metricsRepository) list(match func(metrics.PerformanceMetric) bool) []metrics.PerformanceMetric {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]metrics.PerformanceMetric, 0)
	for _, m := range r.s.daily {
		if match(m) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].MetricDate.Equal(result[j].MetricDate) {
			return result[i].MetricDate.After(result[j].MetricDate)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}

func (r *metricsRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]metrics.PerformanceMetric, error) {
	return r.list(func(m metrics.PerformanceMetric) bool {
		return m.EmployeeID == employeeID && inRange(m.MetricDate, from, to)
	}), nil
}

func (r *metricsRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]metrics.PerformanceMetric, error) {
	return r.list(func(m metrics.PerformanceMetric) bool {
		return inRange(m.MetricDate, from, to)
	}), nil
}

func (r *metricsRepository) AverageByEmployee(ctx context.Context) ([]metrics.EmployeeAverage, error) {
	all := r.list(func(metrics.PerformanceMetric) bool { return true })

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sums := make(map[string]int)
	days := make(map[string]int)
	for _, m := range all {
		sums[m.EmployeeID] += m.ProductivityScore
		days[m.EmployeeID]++
	}

	result := make([]metrics.EmployeeAverage, 0, len(days))
	for id, n := range days {
		a := r.s.accounts[id]
		result = append(result, metrics.EmployeeAverage{
			EmployeeID: id,
			Code:       a.Code,
			Firstname:  a.Firstname,
			Lastname:   a.Lastname,
			AvgScore:   math.Round(float64(sums[id])/float64(n)*100) / 100,
			Days:       n,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AvgScore != result[j].AvgScore {
			return result[i].AvgScore > result[j].AvgScore
		}
		return result[i].Firstname < result[j].Firstname
	})
	return result, nil
}

func (r *metricsRepository) AggregateWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]metrics.WeeklyReport, error) {
	week := r.list(func(m metrics.PerformanceMetric) bool {
		return !m.MetricDate.Before(weekStart) && m.MetricDate.Before(weekEnd)
	})

	byEmployee := make(map[string]*metrics.WeeklyReport)
	scores := make(map[string][]int)
	for _, m := range week {
		w, ok := byEmployee[m.EmployeeID]
		if !ok {
			w = &metrics.WeeklyReport{EmployeeID: m.EmployeeID, WeekStart: weekStart, WeekEnd: weekEnd}
			byEmployee[m.EmployeeID] = w
		}
		w.AttendanceHours += m.AttendanceHours
		w.TasksCompleted += m.TasksCompleted
		scores[m.EmployeeID] = append(scores[m.EmployeeID], m.ProductivityScore)
	}

	result := make([]metrics.WeeklyReport, 0, len(byEmployee))
	for id, w := range byEmployee {
		total := 0
		for _, s := range scores[id] {
			total += s
		}
		w.AvgProductivity = math.Round(float64(total)/float64(len(scores[id]))*100) / 100
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (r *metricsRepository) UpsertWeekly(ctx context.Context, report metrics.WeeklyReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	report.UpdatedAt = r.s.Now()
	r.s.weekly[metricKey{report.EmployeeID, report.WeekStart.Format(time.DateOnly)}] = report
	return nil
}

func (r *metricsRepository) ListWeekly(ctx context.Context, employeeID *string, limit int) ([]metrics.WeeklyReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]metrics.WeeklyReport, 0)
	for _, w := range r.s.weekly {
		if employeeID == nil || w.EmployeeID == *employeeID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeekStart.Equal(result[j].WeekStart) {
			return result[i].WeekStart.After(result[j].WeekStart)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
