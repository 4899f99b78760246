package repo

// TokenStore хранит JWT, который сервер ShareIt выдаёт при регистрации.
// Load на пустом или отсутствующем хранилище возвращает ошибку, Clear идемпотентен.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}
