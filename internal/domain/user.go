package domain

// User данные пользователя, как их отдаёт backend и как они лежат
// в локальном хранилище под ключом userData
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Avatar *string `json:"avatar"`
}

// OfflineUser учётная запись, созданная без доступа к backend.
// Пароль хранится только в виде bcrypt-хеша.
type OfflineUser struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	CPF          string  `json:"cpf"`
	PasswordHash string  `json:"passwordHash"`
	Phone        string  `json:"phone"`
	Avatar       *string `json:"avatar"`
}
