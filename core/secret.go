package core

// Secret wraps a sensitive string value with protection against accidental
// logging or serialization. The underlying value is only reachable through
// Expose.
type Secret struct {
	value string
}

// NewSecret creates a new Secret from a string value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String returns a redacted placeholder. Implements fmt.Stringer.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString returns a redacted placeholder for %#v formatting.
func (s Secret) GoString() string {
	return "core.Secret{[REDACTED]}"
}

// MarshalJSON returns a redacted JSON string.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

// MarshalText returns a redacted text representation.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// Expose returns the actual secret value. Use only where the value is
// genuinely needed, such as authentication headers.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty reports whether the secret value is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
