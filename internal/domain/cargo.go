// Package domain contains the core entities of the employee registry.
package domain

// Cargo represents a position/title referenced by employees.
// Cargos pre-exist and are never created through this service.
type Cargo struct {
	ID   int64  `json:"idCargo"`
	Nome string `json:"nomeCargo"`
}
