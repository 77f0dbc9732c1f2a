package preference

// DiagnosticKind classifies a recovered failure.
type DiagnosticKind string

const (
	DiagnosticInvalidValue       DiagnosticKind = "invalid_value"
	DiagnosticStorageUnavailable DiagnosticKind = "storage_unavailable"
	DiagnosticCookieUnavailable  DiagnosticKind = "cookie_unavailable"
	DiagnosticLookupMiss         DiagnosticKind = "lookup_miss"
)

// Diagnostic describes a failure the engine resolved to a safe default.
type Diagnostic struct {
	Kind  DiagnosticKind
	Field Field
	Value string
	Err   error
}

// DiagnosticFunc receives diagnostics. A nil DiagnosticFunc discards them.
type DiagnosticFunc func(Diagnostic)

// Emit forwards d when f is non-nil.
func (f DiagnosticFunc) Emit(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

func (f DiagnosticFunc) invalid(field Field, value string) {
	f.Emit(Diagnostic{
		Kind:  DiagnosticInvalidValue,
		Field: field,
		Value: value,
		Err:   newInvalidValueError(field, value),
	})
}

func (f DiagnosticFunc) lookupMiss(field Field, value string) {
	f.Emit(Diagnostic{
		Kind:  DiagnosticLookupMiss,
		Field: field,
		Value: value,
		Err:   newLookupMissError(field, value),
	})
}
