package domain

import "github.com/golang-jwt/jwt/v5"

// Claims é o conteúdo do token de operador da API; Subject identifica quem chamou
type Claims struct {
	RoleID int `json:"role_id"`
	jwt.RegisteredClaims
}
