package rbac

import "hris-payroll/internal/domain"

const (
	RoleAdmin          = "admin"
	RolePayrollOfficer = "payroll_officer"
	RoleManager        = "manager"
)

var (
	CapPayrollRead    = domain.Capability{Resource: "payroll", Action: "read"}
	CapPayrollExport  = domain.Capability{Resource: "payroll", Action: "export"}
	CapAttendanceRead = domain.Capability{Resource: "attendance", Action: "read"}
)

// Grants lists the capabilities a role holds directly.
type Grants map[string][]domain.Capability

// Inheritance maps a role to the roles whose capabilities it also holds.
type Inheritance map[string][]string

func DefaultGrants() Grants {
	return Grants{
		RoleManager:        {CapAttendanceRead},
		RolePayrollOfficer: {CapPayrollRead, CapPayrollExport},
	}
}

func DefaultInheritance() Inheritance {
	return Inheritance{
		RolePayrollOfficer: {RoleManager},
		RoleAdmin:          {RolePayrollOfficer},
	}
}
