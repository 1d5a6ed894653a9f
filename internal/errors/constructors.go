package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PublishError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *PublishError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Publish pipeline errors

// SourceUnavailable reports a missing or unreadable source tree. Fatal: the
// whole run aborts and no guarantee is made about already-copied siblings.
func SourceUnavailable(path string, cause error) *PublishError {
	return Wrap(cause, CategorySource, SeverityFatal, "source tree unavailable").
		WithContext("path", path)
}

// DestinationWriteFailure reports an inability to create, remove, or write
// under the destination. Fatal for the current locale.
func DestinationWriteFailure(path string, cause error) *PublishError {
	return Wrap(cause, CategoryDestination, SeverityFatal, "destination write failed").
		WithContext("path", path)
}

// PartialTreeFailure reports a copy or metadata write that failed mid-traversal.
// No rollback is attempted; the destination may be left inconsistent.
func PartialTreeFailure(locale, stage string, cause error) *PublishError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "publish aborted mid-traversal").
		WithContext("locale", locale).
		WithContext("stage", stage)
}

// Infrastructure errors

func HistoryError(operation string, cause error) *PublishError {
	return Wrap(cause, CategoryHistory, SeverityWarning, "history store operation failed").
		WithContext("operation", operation)
}

func DaemonError(message string, cause error) *PublishError {
	return Wrap(cause, CategoryDaemon, SeverityError, message)
}

func InternalError(message string, cause error) *PublishError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
