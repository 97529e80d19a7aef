package constants

// Gin context keys populated by the access middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
)

// Environments accepted by the CLI.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Well-known paths the auth flow redirects through.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Database table names.
const (
	TableUsers       = "users"
	TableCourses     = "courses"
	TableLessons     = "lessons"
	TableEnrollments = "enrollments"
)
