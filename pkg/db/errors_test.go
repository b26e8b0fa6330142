package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgconn(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "team_members_live_user_uq"}
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err, "team_members_live_user_uq") {
		t.Fatal("expected constraint match")
	}
	if IsUniqueViolation(err, "teams_pkey") {
		t.Fatal("unexpected constraint match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation misclassified")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	if !IsUniqueViolation(err, "users_email_key") {
		t.Fatal("expected unique violation")
	}
	if IsUniqueViolation(err, "other") {
		t.Fatal("unexpected constraint match")
	}
}

func TestIsUniqueViolationWrapped(t *testing.T) {
	base := &pgconn.PgError{Code: "23505"}
	wrapped := fmt.Errorf("create membership: %w", base)
	if !IsUniqueViolation(wrapped, "") {
		t.Fatal("expected unique violation through wrapping")
	}
}

func TestIsUniqueViolationFallback(t *testing.T) {
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "x"`), "") {
		t.Fatal("expected message fallback to match")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: team_members.team_id"), "") {
		t.Fatal("expected sqlite message fallback to match")
	}
	if IsUniqueViolation(errors.New("connection reset"), "") {
		t.Fatal("arbitrary error misclassified")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error misclassified")
	}
}
