package errors

var (
	ErrTitleRequired      = validation("title is required")
	ErrTitleTooLong       = validation("title must be at most 200 characters")
	ErrDescriptionTooLong = validation("description must be at most 1000 characters")
	ErrInvalidStatus      = validation("status must be one of todo, in_progress, done")
	ErrInvalidPriority    = validation("priority must be one of low, medium, high, urgent")
	ErrInvalidDueDate     = validation("due_date must be a calendar date (YYYY-MM-DD)")
	ErrNoSubtasks         = validation("at least one subtask is required")
	ErrInvalidSubtasks    = validation("subtasks must be a list of {title, description} objects")
	ErrInvalidJSON        = validation("invalid JSON payload")
	ErrUnknownTool        = notFound("unknown tool")
	ErrUnsupportedDriver  = validation("unsupported task store driver")
)
