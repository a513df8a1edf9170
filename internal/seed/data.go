package seed

import "task_manager/internal/models"

// Demo account.
const (
	DemoUsername = "Reviewer"
	DemoEmail    = "reviewer@example.com"
	DemoPassword = "password123"
)

// sampleTask describes a task relative to the seeding time. Negative dueInDays
// is in the past.
type sampleTask struct {
	title          string
	description    string
	priority       models.Priority
	status         models.Status
	dueInDays      int
	createdDaysAgo int
}

var sampleTasks = []sampleTask{
	// completed over the last week, one per day
	{"Fix Login Bug", "Resolve the JWT token issue on frontend.", models.PriorityHigh, models.StatusCompleted, -6, 6},
	{"Draft System Architecture", "Draw diagrams for the microservices.", models.PriorityMedium, models.StatusCompleted, -5, 5},
	{"Setup Database", "Configure network access and credentials.", models.PriorityHigh, models.StatusCompleted, -4, 4},
	{"Configure Linter", "Add lint rules to the web client.", models.PriorityLow, models.StatusCompleted, -3, 3},
	{"Meeting with Client", "Discuss Q1 roadmap requirements.", models.PriorityMedium, models.StatusCompleted, -2, 2},
	{"Update README.md", "Add installation instructions.", models.PriorityLow, models.StatusCompleted, -1, 1},
	{"Deploy to Production", "Push the latest build to production.", models.PriorityHigh, models.StatusCompleted, 0, 0},

	// open work
	{"Implement Dark Mode", "Add a toggle for dark/light themes.", models.PriorityLow, models.StatusTodo, 2, 1},
	{"Refactor Analytics API", "Optimize the aggregation queries.", models.PriorityHigh, models.StatusInProgress, 1, 2},
	{"Design Logo", "Create SVGs for the branding.", models.PriorityMedium, models.StatusTodo, 5, 3},
	{"Write Unit Tests", "Cover the auth middleware with tests.", models.PriorityHigh, models.StatusTodo, 3, 1},
	{"Optimize Database Indexing", "Add indexes to user_id and created_at.", models.PriorityHigh, models.StatusInProgress, 4, 5},
	{"User Feedback Survey", "Prepare a form for beta testers.", models.PriorityLow, models.StatusTodo, 7, 2},
	{"Fix Mobile Navbar", "Hamburger menu not opening on iOS.", models.PriorityMedium, models.StatusInProgress, 1, 4},
	{"Research Competitors", "Analyze top 3 task management apps.", models.PriorityLow, models.StatusTodo, 10, 6},
	{"Containerize Application", "Create Dockerfiles for client and server.", models.PriorityMedium, models.StatusTodo, 6, 1},
	{"Setup CI/CD Pipeline", "Configure the build pipeline.", models.PriorityHigh, models.StatusTodo, 8, 2},
	{"Update Dependencies", "Audit packages for vulnerabilities.", models.PriorityLow, models.StatusInProgress, 3, 3},
}
