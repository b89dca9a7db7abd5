package ir

type Schema map[string]interface{}

// Default returns the schema's declared default value, if any.
func (s Schema) Default() (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s["default"]
	return v, ok
}
