package account

type Permission string

const (
	// Self service
	PermissionAttendanceSelf Permission = "attendance.self"
	PermissionBreakSelf      Permission = "break.self"
	PermissionTaskWork       Permission = "task.work"
	PermissionMetricsViewOwn Permission = "metrics.view_own"
	PermissionReportSubmit   Permission = "report.submit"

	// Team management
	PermissionTeamManage Permission = "team.manage"

	// Administration
	PermissionAccountManage  Permission = "account.manage"
	PermissionTaskAssign     Permission = "task.assign"
	PermissionMetricsViewAll Permission = "metrics.view_all"
	PermissionMetricsRun     Permission = "metrics.run"
	PermissionReportViewAll  Permission = "report.view_all"
	PermissionExport         Permission = "export.download"
	PermissionAuditView      Permission = "audit.view"
)

// RolePermissions maps roles to their permissions. SUPER_ADMIN is handled in HasPermission.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAccountManage,
		PermissionTaskAssign,
		PermissionMetricsViewAll,
		PermissionMetricsRun,
		PermissionReportViewAll,
		PermissionExport,
		PermissionAuditView,
	},
	RoleManager: {
		PermissionAttendanceSelf,
		PermissionBreakSelf,
		PermissionTeamManage,
		PermissionMetricsViewOwn,
		PermissionReportSubmit,
	},
	RoleEmployee: {
		PermissionAttendanceSelf,
		PermissionBreakSelf,
		PermissionTaskWork,
		PermissionMetricsViewOwn,
		PermissionReportSubmit,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	if role == RoleSuperAdmin {
		return true
	}

	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
