package funcionarios

import "errors"

// Service and gateway errors.
var (
	ErrFuncionarioNotFound = errors.New("funcionario not found")
	ErrEmailExists         = errors.New("email already in use")
	ErrUsuarioExists       = errors.New("usuario already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	// ErrInvalidLookupField signals a lookup with a field outside the
	// allow-list. This is a programming error and must never be built
	// from client input.
	ErrInvalidLookupField = errors.New("invalid lookup field")
)
