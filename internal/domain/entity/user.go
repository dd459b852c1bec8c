package entity

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta local. Username se compara sin distinguir mayúsculas.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Role      string    `json:"role"`
	Suspended bool      `json:"suspended,omitempty"`
}

// UserRecord entrada del directorio: credencial (hash bcrypt) más el usuario.
type UserRecord struct {
	Password string `json:"password"`
	User     User   `json:"user"`
}

// Directory directorio de usuarios indexado por NormalizeUsername(username).
type Directory map[string]UserRecord

// NormalizeUsername devuelve la clave de directorio para un username.
// Un Caser no es seguro entre goroutines, por eso se crea en cada llamada.
func NormalizeUsername(username string) string {
	return cases.Lower(language.Und).String(username)
}
