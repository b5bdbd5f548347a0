package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out,
	a.latitude, a.longitude, a.is_late, a.status, a.leave_request_id,
	a.created_at, a.updated_at, e.name`

const attendanceFrom = `
	FROM attendance_records a
	INNER JOIN employees e ON e.id = a.employee_id`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut,
		&rec.Latitude, &rec.Longitude, &rec.IsLate, &rec.Status, &rec.LeaveRequestID,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	return rec, err
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, clock_in, clock_out, latitude, longitude, is_late, status, leave_request_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	record.Date = attendance.DateOf(record.Date)
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.ClockIn, record.ClockOut,
		record.Latitude, record.Longitude, record.IsLate, record.Status, record.LeaveRequestID,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rec, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+attendanceFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.date = $2
		ORDER BY a.created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, attendance.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}
	return collectAttendance(rows)
}

// GetByLeaveRequestID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByLeaveRequestID(ctx context.Context, leaveRequestID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.leave_request_id = $1
		ORDER BY a.created_at ASC
		LIMIT 1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, leaveRequestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by leave request: %w", err)
	}
	return rec, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	var fromDate, toDate *time.Time
	if from != nil {
		d := attendance.DateOf(*from)
		fromDate = &d
	}
	if to != nil {
		d := attendance.DateOf(*to)
		toDate = &d
	}

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1
		  AND ($2::date IS NULL OR a.date >= $2::date)
		  AND ($3::date IS NULL OR a.date <= $3::date)
		ORDER BY a.date ASC, a.created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			clock_in = $2, clock_out = $3, latitude = $4, longitude = $5,
			is_late = $6, status = $7, leave_request_id = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.ClockIn, record.ClockOut, record.Latitude, record.Longitude,
		record.IsLate, record.Status, record.LeaveRequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// GetStaleOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetStaleOpenSessions(ctx context.Context, before time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.status = 'PRESENT'
		  AND a.clock_in IS NOT NULL
		  AND a.clock_out IS NULL
		  AND a.date < $1
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, attendance.DateOf(before))
	if err != nil {
		return nil, fmt.Errorf("failed to get stale sessions: %w", err)
	}
	return collectAttendance(rows)
}
