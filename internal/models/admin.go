package models

type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
