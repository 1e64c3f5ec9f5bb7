package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
	errRowIsReferenced = 1451
	errSignalException = 1644
)

var (
	procedureName  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	duplicateEntry = regexp.MustCompile(`Duplicate entry '([^']*)'(?: for key '([^']*)')?`)
)

// Observer is told about every procedure call.
type Observer func(procedure string, elapsed time.Duration, err error)

// Executor runs stored procedures. Each call is its own implicit transaction.
type Executor struct {
	db      *sql.DB
	timeout time.Duration
	observe Observer
}

type Option func(*Executor)

// WithTimeout bounds each call, including connection acquisition.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Executor) { e.observe = o }
}

func NewExecutor(db *sql.DB, opts ...Option) *Executor {
	e := &Executor{db: db, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ping checks the pool, used by readiness probes.
func (e *Executor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

// Query calls name and returns the rows of its first result set.
func (e *Executor) Query(ctx context.Context, name string, args ...any) (records, error) {
	start := time.Now()
	out, err := e.call(ctx, name, args)
	if e.observe != nil {
		e.observe(name, time.Since(start), err)
	}
	return out, err
}

// Exec calls name and discards any result set.
func (e *Executor) Exec(ctx context.Context, name string, args ...any) error {
	_, err := e.Query(ctx, name, args...)
	return err
}

func (e *Executor) call(ctx context.Context, name string, args []any) (records, error) {
	stmt, err := callStatement(name, len(args))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, translate(name, err)
	}
	defer rows.Close()

	out, err := scanRecords(rows)
	if err != nil {
		return nil, translate(name, err)
	}
	return out, nil
}

// callStatement builds CALL name(?, ...). Only identifier-safe names are accepted.
func callStatement(name string, n int) (string, error) {
	if !procedureName.MatchString(name) {
		return "", fmt.Errorf("invalid procedure name %q", name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	return "CALL " + name + "(" + placeholders + ")", nil
}

func scanRecords(rows *sql.Rows) (records, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out records
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(record, len(cols))
		for i, col := range cols {
			rec[col] = normalize(values[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return t
	}
}

// translate maps driver errors to the domain taxonomy. Raw driver messages
// are kept in the chain for logs but never become client messages.
func translate(procedure string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDuplicateEntry:
			dup := &domain.DuplicateError{}
			if m := duplicateEntry.FindStringSubmatch(me.Message); m != nil {
				dup.Value = m[1]
				dup.Key = m[2]
			}
			return dup
		case errNoReferencedRow:
			return domain.NewValidationError("La referencia indicada no existe")
		case errRowIsReferenced:
			return domain.NewValidationError("El registro está en uso y no puede eliminarse")
		case errSignalException:
			return domain.NewValidationError("%s", me.Message)
		}
	}
	return fmt.Errorf("%s: %w: %w", procedure, domain.ErrUpstream, err)
}
