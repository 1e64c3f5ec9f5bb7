package domain

// User models an authenticated actor in the system.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"usuario"`
	Name         string `json:"nombre"`
	Role         Role   `json:"rol"`
	PasswordHash string `json:"-"`
}

// NewUser carries the fields persisted by the crear_usuario procedure.
// ID and RoleID are supplied by the caller; the store does not generate them.
type NewUser struct {
	ID           int64  `json:"id_usuario"`
	RoleID       int64  `json:"id_rol"`
	Username     string `json:"usuario"`
	Name         string `json:"nombre"`
	PasswordHash string `json:"-"`
}
