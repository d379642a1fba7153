package model

// Role represents profile roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as stored in profiles.role
const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
	RoleClient = "client"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrador",
		Description: "Full access to the financial module",
	},
	{
		Code:        RoleBarber,
		Name:        "Barbeiro",
		Description: "Registers PDV transactions and sees own history",
	},
	{
		Code:        RoleClient,
		Name:        "Cliente",
		Description: "Barbershop client, no back-office access",
	},
}

// DefaultRolePrivileges maps role codes to the privilege codes seeded for them.
// Admin receives every privilege.
var DefaultRolePrivileges = map[string][]string{
	RoleBarber: {
		PrivTransactionView,
		PrivTransactionCreate,
		PrivDashboardView,
		PrivAppointmentView,
	},
	RoleClient: {},
}
