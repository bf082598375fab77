package model

// Todo is owned by exactly one user; UserID is set at creation and never
// reassigned.
type Todo struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Ctime       int64  `json:"ctime"`
}
