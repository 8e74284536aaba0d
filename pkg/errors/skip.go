package errors

// SkipMessageError tells a queue consumer to ack a message without
// processing it (duplicate delivery, stale payload). It is not a failure.
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "message skipped: " + e.Reason
}

// IsSkip reports whether err is (or wraps) a SkipMessageError.
func IsSkip(err error) bool {
	var skip *SkipMessageError
	return As(err, &skip)
}
