package dto

// CreateUserRequest creates an account from the back-office. Passwords are
// only meaningful for admin accounts.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role" binding:"required,oneof=admin student"`
	Password string `json:"password,omitempty" binding:"omitempty,min=12"`
}

// UpdateUserRequest patches an account. Nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin student"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=active disabled"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=12"`
}

type LessonRequest struct {
	Slug    string `json:"slug" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content,omitempty"`
}

type CreateCourseRequest struct {
	Slug        string          `json:"slug" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description,omitempty"`
	PriceCents  int64           `json:"price_cents" binding:"min=0"`
	Published   bool            `json:"published"`
	Lessons     []LessonRequest `json:"lessons,omitempty"`
}

// UpdateCourseRequest patches a course. When Lessons is non-nil the lesson
// set is replaced wholesale.
type UpdateCourseRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	PriceCents  *int64           `json:"price_cents,omitempty" binding:"omitempty,min=0"`
	Published   *bool            `json:"published,omitempty"`
	Lessons     *[]LessonRequest `json:"lessons,omitempty"`
}

// GrantEnrollmentRequest unlocks a course for a user.
type GrantEnrollmentRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	CourseID uint   `json:"course_id" binding:"required"`
	Source   string `json:"source,omitempty"`
}
