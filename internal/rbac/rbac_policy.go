package rbac

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

const (
	ResourceGrade     = "grade"
	ResourceWorkplace = "workplace"
	ResourceElement   = "element"
	ResourceEmployee  = "employee"
	ResourcePayslip   = "payslip"
	ResourcePayment   = "payment"
	ResourceDebt      = "debt"
	ResourceReport    = "report"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionPay    = "pay"
)

// defaultPolicies: viewer reads everything, accountant runs payroll and the ledger,
// admin additionally manages reference data.
func defaultPolicies() [][]string {
	policies := [][]string{
		{RoleViewer, "*", ActionRead},
		{RoleAdmin, "*", "*"},
	}
	for _, res := range []string{ResourcePayslip, ResourcePayment, ResourceDebt} {
		for _, act := range []string{ActionCreate, ActionUpdate, ActionDelete} {
			policies = append(policies, []string{RoleAccountant, res, act})
		}
	}
	policies = append(policies, []string{RoleAccountant, ResourcePayslip, ActionPay})
	return policies
}

func defaultGroupings() [][]string {
	return [][]string{
		{RoleAccountant, RoleViewer},
		{RoleAdmin, RoleAccountant},
	}
}
