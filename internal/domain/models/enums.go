// internal/domain/models/enums.go
package models

// Role values.
const (
	RoleAdvocate   = "advocate"
	RoleTeamMember = "team_member"
	RoleAdmin      = "admin"
	RoleClient     = "client"
)

// Client status values.
const (
	ClientActive   = "active"
	ClientInactive = "inactive"
	ClientProspect = "prospect"
	ClientFormer   = "former"
)

// Case status values.
const (
	CaseActive    = "active"
	CaseClosed    = "closed"
	CasePending   = "pending"
	CaseOnHold    = "on_hold"
	CaseSettled   = "settled"
	CaseDismissed = "dismissed"
)

// Task status and priority values.
const (
	TaskPending        = "pending"
	TaskInProgress     = "in_progress"
	TaskCompleted      = "completed"
	TaskOverdue        = "overdue"
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

var (
	validRoles      = set(RoleAdvocate, RoleTeamMember, RoleAdmin, RoleClient)
	validClientType = set("individual", "corporate", "government")
	validClientStat = set(ClientActive, ClientInactive, ClientProspect, ClientFormer)

	validCaseType = set("civil", "criminal", "family", "corporate", "property", "other")
	validCaseStat = set(CaseActive, CaseClosed, CasePending, CaseOnHold, CaseSettled, CaseDismissed)
	validPriority = set("low", "medium", "high", "urgent")
	validStage    = set("Agreement", "Arguments", "Charge", "Evidence", "Judgement", "Plaintiff Evidence", "Remand")

	validTaskStat = set(TaskPending, TaskInProgress, TaskCompleted, TaskOverdue)
	validTaskPrio = set(TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh)
)

func set(vals ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

func in(m map[string]struct{}, v string) bool {
	_, ok := m[v]
	return ok
}

// ValidRole reports whether v is a known role.
func ValidRole(v string) bool { return in(validRoles, v) }

// ValidClientType reports whether v is a known client type.
func ValidClientType(v string) bool { return in(validClientType, v) }

// ValidClientStatus reports whether v is a known client status.
func ValidClientStatus(v string) bool { return in(validClientStat, v) }

// ValidCaseType reports whether v is a known case type.
func ValidCaseType(v string) bool { return in(validCaseType, v) }

// ValidCaseStatus reports whether v is a known case status.
func ValidCaseStatus(v string) bool { return in(validCaseStat, v) }

// ValidCasePriority reports whether v is a known case priority.
func ValidCasePriority(v string) bool { return in(validPriority, v) }

// ValidCaseStage reports whether v is a known hearing stage.
func ValidCaseStage(v string) bool { return in(validStage, v) }

// ValidTaskStatus reports whether v is a known task status.
func ValidTaskStatus(v string) bool { return in(validTaskStat, v) }

// ValidTaskPriority reports whether v is a known task priority.
func ValidTaskPriority(v string) bool { return in(validTaskPrio, v) }
