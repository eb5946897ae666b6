package errors

var ErrTaskIDRequired = validation("task id is required")
