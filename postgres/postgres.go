package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

func NewConnection(opts Options) (*gorm.DB, error) {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	datasource := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)

	return gorm.Open(postgres.Open(datasource), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// SQLSTATE values the repositories translate into domain errors. Class 22 is
// data exception (e.g. value too long), class 23 integrity constraint
// violation.
const (
	sqlstateUniqueViolation = "23505"
	sqlstateClassData       = "22"
	sqlstateClassIntegrity  = "23"
)

// constraintViolation inspects the root cause of err and reports the SQLSTATE
// and constraint name when the database rejected the write. The gorm driver
// surfaces pgx errors; lib/pq errors are accepted as well so the check holds
// for connections opened through database/sql.
func constraintViolation(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, isRejectedWrite(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, isRejectedWrite(string(pqErr.Code))
	}
	return "", "", false
}

func isRejectedWrite(code string) bool {
	return strings.HasPrefix(code, sqlstateClassIntegrity) || strings.HasPrefix(code, sqlstateClassData)
}

func observe(method string) func() {
	start := time.Now()
	return func() {
		metrics.ObserveDBRequest(method, time.Since(start))
	}
}
