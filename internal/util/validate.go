package util

import (
	"github.com/jmgilman/go/errors"
)

// InvalidConfig builds an INVALID_CONFIGURATION error tagged with the
// offending field and value.
func InvalidConfig(field string, value any, format string, args ...any) error {
	err := errors.Newf(errors.CodeInvalidConfig, format, args...)
	return errors.WithContextMap(err, map[string]interface{}{
		"field": field,
		"value": value,
	})
}
