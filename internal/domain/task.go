package domain

// Task is the domain entity. It does not depend on Gin or SQLite.
// Description is a pointer because the column is nullable.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool
}
