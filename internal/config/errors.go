package config

import (
	"errors"
	"fmt"
)

// Error kinds returned by Load. Every error returned by Load is a *LoadError
// whose Kind is one of these, so callers can use errors.Is.
var (
	ErrFileNotFound                = errors.New("file not found")
	ErrUnableToReadFile            = errors.New("unable to read config file")
	ErrInvalidSyntax               = errors.New("invalid syntax")
	ErrInvalidConfigDirectory      = errors.New("invalid config directory")
	ErrInvalidParameter            = errors.New("invalid parameter")
	ErrNameDuplicate               = errors.New("duplicate name")
	ErrUnableToCreateDefaultConfig = errors.New("could not generate default config file")
	ErrParentCycle                 = errors.New("parent cycle")
)

// LoadError describes why loading a configuration set failed and which file
// caused it.
type LoadError struct {
	Kind error
	Path string
	// Line is the 1-based line of a syntax error, when the parser reports one.
	Line   int
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case ErrInvalidSyntax:
		if e.Line > 0 {
			return fmt.Sprintf("error parsing YAML file '%s' at line %d, invalid syntax: %s", e.Path, e.Line, e.Detail)
		}
		return fmt.Sprintf("error parsing YAML file '%s', invalid syntax: %s", e.Path, e.Detail)
	case ErrInvalidParameter:
		return fmt.Sprintf("invalid parameter in '%s', use of reserved parameters in user defined configs is not permitted: %s", e.Path, e.Detail)
	case ErrNameDuplicate:
		if e.Detail != "" {
			return fmt.Sprintf("found duplicate 'name' in '%s', already declared in '%s', please use different names", e.Path, e.Detail)
		}
		return fmt.Sprintf("found duplicate 'name' in '%s', please use different names", e.Path)
	case ErrParentCycle:
		return fmt.Sprintf("parent chain of '%s' loops back on itself: %s", e.Path, e.Detail)
	}

	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *LoadError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newLoadError(kind error, path string, cause error) *LoadError {
	return &LoadError{Kind: kind, Path: path, Err: cause}
}
