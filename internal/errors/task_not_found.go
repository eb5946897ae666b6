package errors

var ErrTaskNotFound = notFound("task not found")

var ErrParentNotFound = notFound("parent task not found")
