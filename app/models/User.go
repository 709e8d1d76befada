package models

// User is an account row. Passwords are stored as bcrypt hashes only.
type User struct {
	tableName struct{} `pg:"users"`

	Id       string `json:"id" pg:",pk"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// UserDto is the registration/login request body.
type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
