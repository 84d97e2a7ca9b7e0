package domain

import (
	"fmt"
	"net/mail"
)

// Role - роль пользователя. Пустая роль - анонимный посетитель.
type Role string

const (
	RoleAnonymous Role = ""
	RoleUser      Role = "user"
	RoleAgent     Role = "agent"
)

// ParseRole разбирает роль из запроса на создание сессии
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAnonymous, RoleUser, RoleAgent:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Ключи хранилища сессии. Совпадают с ключами, которые раньше писались в localStorage.
const (
	KeyRole       = "role"
	KeyTeleNumber = "teleNumber"
	KeyUserID     = "userId"
	KeyEmail      = "email"
	KeyTeleEmail  = "teleEmail"
)

// SessionKeys - все ключи идентичности сессии
var SessionKeys = []string{KeyRole, KeyTeleNumber, KeyUserID, KeyEmail, KeyTeleEmail}

// SessionIdentity - значения, которые передает оболочка при запуске
type SessionIdentity struct {
	Role       Role
	TeleNumber string
	UserID     string
	Email      string
}

// Validate проверяет формат email, если он передан
func (i SessionIdentity) Validate() error {
	if _, err := ParseRole(string(i.Role)); err != nil {
		return err
	}
	if i.Email != "" {
		if _, err := mail.ParseAddress(i.Email); err != nil {
			return fmt.Errorf("%w: malformed email", ErrValidation)
		}
	}
	return nil
}

// Session - явный контекст сессии. Читается из хранилища один раз на запрос
// и передается в обработчики через context.Context.
type Session struct {
	ID         string
	Role       Role
	TeleNumber string
	UserID     string
	Email      string
	TeleEmail  string
}

// AnonymousSession - сессия посетителя без токена
func AnonymousSession() *Session {
	return &Session{}
}

// NewSession создает сессию из переданной идентичности
func NewSession(id string, identity SessionIdentity) *Session {
	return &Session{
		ID:         id,
		Role:       identity.Role,
		TeleNumber: identity.TeleNumber,
		UserID:     identity.UserID,
		Email:      identity.Email,
	}
}

// IsStarted - есть ли у сессии серверное состояние
func (s *Session) IsStarted() bool {
	return s != nil && s.ID != ""
}

// IsAnonymous - отсутствие всех ключей означает анонимного посетителя
func (s *Session) IsAnonymous() bool {
	return s == nil || (s.Role == RoleAnonymous && s.TeleNumber == "" && s.UserID == "" && s.Email == "" && s.TeleEmail == "")
}

// LikesEmail - адрес, по которому бэкенд хранит избранное.
// teleEmail появляется после входа через профиль и используется, если email не передан при запуске.
func (s *Session) LikesEmail() string {
	if s == nil {
		return ""
	}
	if s.Email != "" {
		return s.Email
	}
	return s.TeleEmail
}

// Values - непустые ключи сессии для записи в хранилище
func (s *Session) Values() map[string]string {
	values := make(map[string]string, len(SessionKeys))
	set := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	set(KeyRole, string(s.Role))
	set(KeyTeleNumber, s.TeleNumber)
	set(KeyUserID, s.UserID)
	set(KeyEmail, s.Email)
	set(KeyTeleEmail, s.TeleEmail)
	return values
}

// SessionFromValues восстанавливает сессию из значений хранилища. Неизвестные ключи игнорируются.
func SessionFromValues(id string, values map[string]string) *Session {
	return &Session{
		ID:         id,
		Role:       Role(values[KeyRole]),
		TeleNumber: values[KeyTeleNumber],
		UserID:     values[KeyUserID],
		Email:      values[KeyEmail],
		TeleEmail:  values[KeyTeleEmail],
	}
}
