package employee

import (
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/dbutil"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if dbutil.IsNotFound(err) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if dbutil.IsUniqueViolation(err, MatriculeConstraint) {
		return employeeerrors.ErrMatriculeAlreadyExists.WithCause(err)
	}

	return err
}
