package types

// Enum value sets. Incoming strings are checked against these at the
// boundary; the database columns store the raw string values.

const (
	RoleAdmin    = "admin"
	RoleTeamLead = "team_lead"
	RoleEmployee = "employee"
	RoleSalesman = "salesman"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

const (
	TaskStatusBacklog    = "backlog"
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusInReview   = "in_review"
	TaskStatusDone       = "done"
)

const (
	TaskPriorityLow      = "low"
	TaskPriorityMedium   = "medium"
	TaskPriorityHigh     = "high"
	TaskPriorityCritical = "critical"
)

const (
	BudgetTypeFixed  = "fixed"
	BudgetTypeHourly = "hourly"
)

const (
	FeasibilityPending = "pending"
	FeasibilityValid   = "valid"
	FeasibilityScam    = "scam"
	FeasibilityUnsure  = "unsure"
)

const (
	ProposalStatusDraft    = "draft"
	ProposalStatusSent     = "sent"
	ProposalStatusRejected = "rejected"
	ProposalStatusAccepted = "accepted"
)

const (
	ProfileStatusActive   = "active"
	ProfileStatusInactive = "inactive"
)

var (
	UserRoles      = []string{RoleAdmin, RoleTeamLead, RoleEmployee, RoleSalesman}
	ProjectStatus  = []string{ProjectStatusActive, ProjectStatusCompleted}
	TaskStatus     = []string{TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone}
	TaskPriority   = []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical}
	BudgetType     = []string{BudgetTypeFixed, BudgetTypeHourly}
	Feasibility    = []string{FeasibilityPending, FeasibilityValid, FeasibilityScam, FeasibilityUnsure}
	ProposalStatus = []string{ProposalStatusDraft, ProposalStatusSent, ProposalStatusRejected, ProposalStatusAccepted}
	ProfileStatus  = []string{ProfileStatusActive, ProfileStatusInactive}
)

func ValidEnum(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
