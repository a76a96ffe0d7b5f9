package domain

// User is the public projection of a row in the usuarios table. The password column never
// leaves the repository.
type User struct {
	ID        int64  `json:"usuario_id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
}

// Credential is the username/password pair presented at login.
type Credential struct {
	Username string
	Password string
}

func (c Credential) IsComplete() bool {
	return c.Username != "" && c.Password != ""
}
