package model

// Privilege represents a permission that can be assigned to profiles
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "transaction:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

const (
	PrivProfileView       = "profile:view"
	PrivProfileManage     = "profile:manage"
	PrivTransactionView   = "transaction:view"
	PrivTransactionCreate = "transaction:create"
	PrivTransactionCancel = "transaction:cancel"
	PrivDashboardView     = "dashboard:view"
	PrivReportView        = "report:view"
	PrivCommissionManage  = "commission:manage"
	PrivCatalogManage     = "catalog:manage"
	PrivAppointmentView   = "appointment:view"
)

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	{Code: PrivProfileView, Name: "View Profiles"},
	{Code: PrivProfileManage, Name: "Manage Profiles"},
	{Code: PrivTransactionView, Name: "View Transactions"},
	{Code: PrivTransactionCreate, Name: "Register PDV Transaction"},
	{Code: PrivTransactionCancel, Name: "Cancel Transaction"},
	{Code: PrivDashboardView, Name: "View Cash Flow Dashboard"},
	{Code: PrivReportView, Name: "View Commission Reports"},
	{Code: PrivCommissionManage, Name: "Manage Commission Percentages"},
	{Code: PrivCatalogManage, Name: "Manage Service Catalog"},
	{Code: PrivAppointmentView, Name: "View Appointments"},
}
