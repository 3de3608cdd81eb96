package locale

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicatePrefix is returned when two locales declare the same prefix.
	ErrDuplicatePrefix = errors.New("duplicate locale prefix")
	// ErrMalformedEntry is returned for a sidebar/nav entry with a missing or malformed path.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrOrphanPrefix is returned when a prefix appears in only one of locales/themeConfig.locales.
	ErrOrphanPrefix = errors.New("orphan locale prefix")
	// ErrDuplicateTable is returned when a source declares more than one locale table.
	ErrDuplicateTable = errors.New("duplicate locale table")
)

// ConfigError describes a load-time failure. The site must not start when one is returned.
type ConfigError struct {
	Kind   error
	Prefix string
	Group  string
	Detail string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("locale config: ")
	b.WriteString(e.Kind.Error())
	if e.Prefix != "" {
		fmt.Fprintf(&b, " (locale %q", e.Prefix)
		if e.Group != "" {
			fmt.Fprintf(&b, ", group %q", e.Group)
		}
		b.WriteString(")")
	} else if e.Group != "" {
		fmt.Fprintf(&b, " (group %q)", e.Group)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes the sentinel kind for errors.Is.
func (e *ConfigError) Unwrap() error { return e.Kind }

func configErr(kind error, prefix, group, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Prefix: prefix, Group: group, Detail: fmt.Sprintf(format, args...)}
}

// NewConfigError builds a ConfigError for loaders outside this package.
func NewConfigError(kind error, prefix, group, detail string) *ConfigError {
	return &ConfigError{Kind: kind, Prefix: prefix, Group: group, Detail: detail}
}
