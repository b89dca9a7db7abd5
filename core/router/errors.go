package router

import "fmt"

// TemplateError reports a path template that could not be compiled into a
// matchable pattern. It aborts table construction; a table is never left in
// a partially built state.
type TemplateError struct {
	Template string
	Reason   string
	Err      error
}

func (e *TemplateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("path template %q: %s: %v", e.Template, e.Reason, e.Err)
	}
	return fmt.Sprintf("path template %q: %s", e.Template, e.Reason)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a parameter declaration that requires request
// data the hosting pipeline did not provide, such as a query declaration on
// a request whose query was never parsed. It aborts resolution for the one
// request only.
type ConfigurationError struct {
	Parameter string
	In        string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("parameter %q (in %s): %s", e.Parameter, e.In, e.Reason)
}
