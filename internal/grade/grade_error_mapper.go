package grade

import (
	gradeerrors "go-payroll/internal/grade/errors"
	"go-payroll/internal/shared/dbutil"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dbutil.IsNotFound(err) {
		return gradeerrors.ErrGradeNotFound
	}
	if dbutil.IsUniqueViolation(err, LabelConstraint) || dbutil.IsUniqueViolation(err, "grades.label") {
		return gradeerrors.ErrGradeLabelExists.WithCause(err)
	}
	return err
}
