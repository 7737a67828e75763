package server

import "github.com/Lerokbel/BarberShop/internal/model"

// Session — аутентифицированная личность одного соединения.
// Заполняется единственный раз при успешном AUTHORIZE и передаётся
// в каждый обработчик явно, без разделяемого состояния.
type Session struct {
	Type model.UserType
	ID   uint
}

func (s Session) Authenticated() bool { return s.Type != "" }

func (s Session) Is(types ...model.UserType) bool {
	for _, t := range types {
		if s.Type == t {
			return true
		}
	}
	return false
}
