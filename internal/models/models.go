package models

import (
	"time"
)

// UserProfile is the public view of a user record, returned on successful
// authentication. The stored password hash never leaves the service layer.
type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// ResetToken is one row of the password reset sheet. Several tokens may
// coexist for the same email; lookup scans most-recent-first.
type ResetToken struct {
	Email      string    `json:"email"`
	Code       string    `json:"code"`
	Expiration time.Time `json:"expiration"`
}

// Posto is a client work-site referenced by clients and forecasts.
type Posto struct {
	ID   string `json:"ID"`
	Nome string `json:"NOME"`
}

// Cliente is the reference view of a client row used by the frontend.
type Cliente struct {
	ID          string `json:"ID"`
	PostoID     string `json:"POSTO_ID"`
	RazaoSocial string `json:"RAZAO_SOCIAL"`
	CNPJ        string `json:"CNPJ"`
}

// SalaryEntry is one labor-category-to-salary mapping, used both for the
// proposal budget base and the convention salary base. Salario keeps the
// raw cell value so numeric and formatted-string salaries both survive.
type SalaryEntry struct {
	ID      string      `json:"id"`
	Funcao  string      `json:"funcao"`
	Salario interface{} `json:"salario"`
}
