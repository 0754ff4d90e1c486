package model

// Client-side views of the backend entities. Field names mirror the REST
// API's JSON wire format; server-computed fields (timestamps, owner, progress)
// are read-only here and never sent back on create/update.

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "PLANNING"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

type ProjectPriority string

const (
	ProjectPriorityLow      ProjectPriority = "LOW"
	ProjectPriorityMedium   ProjectPriority = "MEDIUM"
	ProjectPriorityHigh     ProjectPriority = "HIGH"
	ProjectPriorityCritical ProjectPriority = "CRITICAL"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskInReview   TaskStatus = "IN_REVIEW"
	TaskBlocked    TaskStatus = "BLOCKED"
	TaskCompleted  TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

type TeamRole string

const (
	RoleViewer  TeamRole = "VIEWER"
	RoleMember  TeamRole = "MEMBER"
	RoleLead    TeamRole = "LEAD"
	RoleManager TeamRole = "MANAGER"
	RoleAdmin   TeamRole = "ADMIN"
)

// ProjectStatuses etc. are the pick lists shown by filter and form widgets,
// in display order. "ALL" is a filter-only sentinel and deliberately absent.
var (
	ProjectStatuses   = []ProjectStatus{ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}
	ProjectPriorities = []ProjectPriority{ProjectPriorityLow, ProjectPriorityMedium, ProjectPriorityHigh, ProjectPriorityCritical}
	TaskStatuses      = []TaskStatus{TaskTodo, TaskInProgress, TaskInReview, TaskBlocked, TaskCompleted}
	TaskPriorities    = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	TeamRoles         = []TeamRole{RoleViewer, RoleMember, RoleLead, RoleManager, RoleAdmin}
)

// UserSummary is the nested user shape the backend embeds in projects,
// tasks and team members.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (u UserSummary) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

type ProjectRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      ProjectStatus   `json:"status"`
	Priority    ProjectPriority `json:"priority"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate,omitempty"`
	Budget      float64         `json:"budget,omitempty"`
	Progress    int             `json:"progress,omitempty"`
	Owner       *UserSummary    `json:"owner,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

type Task struct {
	ID          int64        `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"dueDate,omitempty"`
	StartDate   string       `json:"startDate,omitempty"`
	CompletedAt string       `json:"completedAt,omitempty"`

	// Create/update payloads carry bare ids; responses embed the objects.
	ProjectID    int64 `json:"projectId,omitempty"`
	AssignedToID int64 `json:"assignedToId,omitempty"`

	Project    *ProjectRef  `json:"project,omitempty"`
	AssignedTo *UserSummary `json:"assignedTo,omitempty"`
	CreatedBy  *UserSummary `json:"createdBy,omitempty"`

	Tags      []Tag  `json:"tags,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProjectName is a display helper tolerant of list responses that omit the
// embedded project object.
func (t Task) ProjectName() string {
	if t.Project == nil {
		return ""
	}
	return t.Project.Name
}

type TeamMember struct {
	User UserSummary `json:"user"`
	Role TeamRole    `json:"role"`
}

type ProjectStats struct {
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	OverdueTasks    int `json:"overdueTasks"`
	TeamMembers     int `json:"teamMembers"`
}

type Credentials struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	User        UserSummary `json:"user"`
}
