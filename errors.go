package eta

import "errors"

// Sentinel errors for runtime operations.
var (
	ErrDuplicateTag   = errors.New("eta: tag already defined")
	ErrUndefinedTag   = errors.New("eta: tag not defined")
	ErrNoTemplate     = errors.New("eta: template not found")
	ErrConstructed    = errors.New("eta: element already constructed")
	ErrNotConstructed = errors.New("eta: element not constructed")
	ErrReleased       = errors.New("eta: instance released")
)

// IsDuplicate checks if err is a rejected duplicate registration.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateTag)
}

// IsUndefined checks if err reports a tag without a definition or template.
func IsUndefined(err error) bool {
	return errors.Is(err, ErrUndefinedTag) || errors.Is(err, ErrNoTemplate)
}
