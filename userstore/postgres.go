package userstore

import (
	"context"
	"time"

	"github.com/cccteam/httpio"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
)

// Queryer is the subset of a pgx connection pool used by the Postgres store.
type Queryer interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

var (
	_ Store  = &Postgres{}
	_ Writer = &Postgres{}
)

// Postgres is the user-record store backed by PostgreSQL.
type Postgres struct {
	conn      Queryer
	userTable string
}

// NewPostgres creates a Postgres user store on the given connection pool.
func NewPostgres(conn Queryer) *Postgres {
	return &Postgres{
		conn:      conn,
		userTable: `"Users"`,
	}
}

// UserRole returns the stored role for the subject.
func (p *Postgres) UserRole(ctx context.Context, subject string) (string, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Postgres.UserRole()")
	defer span.End()

	query := `
		SELECT "Role"
		FROM ` + p.userTable + `
		WHERE "Subject" = $1
	`

	row := struct {
		Role string `db:"Role"`
	}{}
	if err := pgxscan.Get(ctx, p.conn, &row, query, subject); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", httpio.NewNotFoundMessagef("no user record for subject %s", subject)
		}

		return "", errors.Wrapf(err, "failed to scan role for subject %s", subject)
	}

	return row.Role, nil
}

// AssignRole stores the role for the subject, creating the record when
// none exists.
func (p *Postgres) AssignRole(ctx context.Context, subject, role string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Postgres.AssignRole()")
	defer span.End()

	query := `
		INSERT INTO ` + p.userTable + ` ("Subject", "Role", "UpdatedAt")
		VALUES ($1, $2, $3)
		ON CONFLICT ("Subject") DO UPDATE SET "Role" = $2, "UpdatedAt" = $3
	`

	if _, err := p.conn.Exec(ctx, query, subject, role, time.Now()); err != nil {
		return errors.Wrapf(err, "failed to assign role for subject %s", subject)
	}

	return nil
}
