package errors

// Error is a constant-string error so that sentinel errors can be declared
// as package-level consts.
type Error string

func (e Error) Error() string { return string(e) }
