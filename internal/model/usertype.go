package model

// UserType — роль аутентифицированного участника.
// Пустое значение означает «не авторизован».
type UserType string

const (
	UserTypeUser   UserType = "USER"
	UserTypeMaster UserType = "MASTER"
	UserTypeAdmin  UserType = "ADMIN"
)
