package user

type Permission string

const (
	// Employee registry
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceView    Permission = "attendance.view"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Night rotation
	PermissionRotationView   Permission = "rotation.view"
	PermissionRotationManage Permission = "rotation.manage"

	// Leave
	PermissionLeaveRequest Permission = "leave.request"
	PermissionLeaveView    Permission = "leave.view"
	PermissionLeaveApprove Permission = "leave.approve"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionAttendanceClock,
		PermissionAttendanceView,
		PermissionAttendanceCorrect,
		PermissionRotationView,
		PermissionRotationManage,
		PermissionLeaveRequest,
		PermissionLeaveView,
		PermissionLeaveApprove,
	},
	RoleSupervisor: {
		PermissionEmployeeView,
		PermissionAttendanceClock,
		PermissionAttendanceView,
		PermissionAttendanceCorrect,
		PermissionRotationView,
		PermissionRotationManage,
		PermissionLeaveRequest,
		PermissionLeaveView,
		PermissionLeaveApprove,
	},
	RoleClerk: {
		PermissionEmployeeView,
		PermissionAttendanceClock,
		PermissionAttendanceView,
		PermissionRotationView,
		PermissionLeaveRequest,
		PermissionLeaveView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
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
