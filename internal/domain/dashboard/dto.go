package dashboard

// HRStatsResponse backs the HR overview dashboard.
type HRStatsResponse struct {
	ActiveEmployeesCount  int64 `json:"active_employees_count"`
	PendingOnboardingCount int64 `json:"pending_onboarding_count"`
	PendingPayRunsCount   int64 `json:"pending_payruns_count"`
}

// AdminStatsResponse backs the admin overview dashboard.
type AdminStatsResponse struct {
	TotalUsersCount  int64 `json:"total_users_count"`
	ActiveUsersCount int64 `json:"active_users_count"`
	DepartmentCount  int64 `json:"department_count"`
}
