package domain

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Common domain errors
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrAccessDenied       = errors.New("access denied")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)

// Workflow errors
var (
	// ErrInvalidTransition is returned when a terminal report or membership
	// state is asked to transition again.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrAlreadyProcessed is returned when a conditional status update hits
	// zero rows: another reviewer finished the same report first.
	ErrAlreadyProcessed = errors.New("report already processed")

	// ErrRegionNotEmpty is returned when deleting a DPC region that still
	// has member companies.
	ErrRegionNotEmpty = errors.New("region still has member companies")
)

// PartialApprovalError reports an approval whose global entry was created
// but whose source report could not be marked approved. It carries enough
// detail for manual or scheduled reconciliation and must never be folded
// into a generic upstream failure.
type PartialApprovalError struct {
	ReportID uint
	GlobalID uint
	Err      error
}

func (e *PartialApprovalError) Error() string {
	return fmt.Sprintf("partial approval: global entry %d created but report %d still pending: %v",
		e.GlobalID, e.ReportID, e.Err)
}

func (e *PartialApprovalError) Unwrap() error {
	return e.Err
}

// IsPermissionDenied reports whether err is the backing store refusing the
// statement itself (grants revoked, not an empty scope). Handlers translate
// this to a "contact administrator" message instead of a retry affordance.
func IsPermissionDenied(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1044, 1045, 1142, 1143:
			return true
		}
	}
	return false
}
