package entity

import "time"

// User representa un usuario del sistema.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"` // bcrypt, nunca en texto plano
	CreatedAt    time.Time `json:"createdAt"`
}

// Session marca del usuario con sesión activa (una sola a la vez).
type Session struct {
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	LoggedInAt time.Time `json:"loggedInAt"`
}
