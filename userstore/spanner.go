package userstore

import (
	"context"
	"fmt"
	"time"

	cloudspanner "cloud.google.com/go/spanner"
	"github.com/cccteam/httpio"
	"github.com/cccteam/spxscan"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/codes"
)

var (
	_ Store  = &Spanner{}
	_ Writer = &Spanner{}
)

// Spanner is the user-record store backed by Cloud Spanner.
type Spanner struct {
	spanner   *cloudspanner.Client
	userTable string
}

// NewSpanner creates a Spanner user store on the given client.
func NewSpanner(client *cloudspanner.Client) *Spanner {
	return &Spanner{
		spanner:   client,
		userTable: "Users",
	}
}

// UserRole returns the stored role for the subject.
func (s *Spanner) UserRole(ctx context.Context, subject string) (string, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Spanner.UserRole()")
	defer span.End()

	stmt := cloudspanner.NewStatement(fmt.Sprintf(`
		SELECT
			Role
		FROM %s
		WHERE Subject = @subject
	`, s.userTable))
	stmt.Params["subject"] = subject

	row := struct {
		Role string `spanner:"Role"`
	}{}
	if err := spxscan.Get(ctx, s.spanner.Single(), &row, stmt); err != nil {
		if errors.Is(err, spxscan.ErrNotFound) {
			return "", httpio.NewNotFoundMessagef("no user record for subject %q", subject)
		}

		return "", errors.Wrapf(err, "failed to scan role for subject %q", subject)
	}

	return row.Role, nil
}

// AssignRole stores the role for the subject, creating the record when
// none exists.
func (s *Spanner) AssignRole(ctx context.Context, subject, role string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Spanner.AssignRole()")
	defer span.End()

	record := struct {
		Subject   string    `spanner:"Subject"`
		Role      string    `spanner:"Role"`
		UpdatedAt time.Time `spanner:"UpdatedAt"`
	}{
		Subject:   subject,
		Role:      role,
		UpdatedAt: time.Now(),
	}

	mutation, err := cloudspanner.InsertOrUpdateStruct(s.userTable, record)
	if err != nil {
		return errors.Wrap(err, "spanner.InsertOrUpdateStruct()")
	}

	if _, err := s.spanner.Apply(ctx, []*cloudspanner.Mutation{mutation}); err != nil {
		if cloudspanner.ErrCode(err) == codes.NotFound {
			return httpio.NewNotFoundMessagef("user table %q not found", s.userTable)
		}

		return errors.Wrap(err, "spanner.Client.Apply()")
	}

	return nil
}
