package services

import (
	"safetour/internal/models"
)

// Operation enumerates every policy-gated action in the system.
type Operation string

const (
	OpRaiseSOS         Operation = "raise_sos"
	OpViewActiveAlerts Operation = "view_active_alerts"
	OpAcknowledgeAlert Operation = "acknowledge_alert"
	OpCloseAlert       Operation = "close_alert"
	OpViewAlertHistory Operation = "view_alert_history"
	OpViewTourists     Operation = "view_tourists"
	OpViewAccessLogs   Operation = "view_access_logs"
	OpExportLogs       Operation = "export_logs"
)

// policyTable is the single source of truth for role-based access. Every
// mutating alert operation consults it; absent pairs deny.
var policyTable = map[models.UserRole]map[Operation]bool{
	models.RoleAdmin: {
		OpViewActiveAlerts: true,
		OpAcknowledgeAlert: true,
		OpCloseAlert:       true,
		OpViewAlertHistory: true,
		OpViewTourists:     true,
		OpViewAccessLogs:   true,
		OpExportLogs:       true,
	},
	models.RolePolice: {
		OpViewActiveAlerts: true,
		OpAcknowledgeAlert: true,
		OpCloseAlert:       true,
		OpViewAlertHistory: true,
		OpViewTourists:     true,
	},
	models.RoleTourist: {
		OpRaiseSOS: true,
	},
	models.RoleCybersecurity: {
		OpViewAccessLogs: true,
		OpExportLogs:     true,
	},
}

// Permits reports whether the role may perform the operation. Unknown
// roles and operations fail closed.
func Permits(role models.UserRole, op Operation) bool {
	ops, ok := policyTable[role]
	if !ok {
		return false
	}
	return ops[op]
}
