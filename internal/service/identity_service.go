package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
	"github.com/Lerokbel/BarberShop/internal/repository"
)

// ErrLoginTaken возвращается при регистрации с занятым логином.
var ErrLoginTaken = errors.New("login already taken")

// Identity отвечает за авторизацию, регистрацию и профили.
type Identity struct {
	log *slog.Logger

	admins  repository.AdminRepository
	masters repository.MasterRepository
	clients repository.ClientRepository
	events  repository.EventRepository
}

func NewIdentity(
	log *slog.Logger,
	admins repository.AdminRepository,
	masters repository.MasterRepository,
	clients repository.ClientRepository,
	events repository.EventRepository,
) *Identity {
	return &Identity{
		log:     log.With("service", "identity"),
		admins:  admins,
		masters: masters,
		clients: clients,
		events:  events,
	}
}

// Authorize ищет пару логин/пароль по всем трём таблицам:
// сначала админы, потом мастера, потом клиенты. Если пара нигде
// не найдена, возвращается пустой UserType без ошибки.
func (s *Identity) Authorize(ctx context.Context, login, password string) (model.UserType, uint, error) {
	if a, err := s.admins.GetByCredentials(ctx, login, password); err == nil {
		return model.UserTypeAdmin, a.ID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, fmt.Errorf("authorize admin: %w", err)
	}

	if m, err := s.masters.GetByCredentials(ctx, login, password); err == nil {
		return model.UserTypeMaster, m.ID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, fmt.Errorf("authorize master: %w", err)
	}

	if u, err := s.clients.GetByCredentials(ctx, login, password); err == nil {
		return model.UserTypeUser, u.ID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, fmt.Errorf("authorize client: %w", err)
	}

	return "", 0, nil
}

// LoginExists проверяет занятость логина во всех трёх таблицах.
func (s *Identity) LoginExists(ctx context.Context, login string) (bool, error) {
	if _, err := s.clients.GetByLogin(ctx, login); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check client login: %w", err)
	}

	if _, err := s.masters.GetByLogin(ctx, login); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check master login: %w", err)
	}

	if _, err := s.admins.GetByLogin(ctx, login); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check admin login: %w", err)
	}

	return false, nil
}

// checkLoginFree — общая проверка для регистрации и смены логина.
func (s *Identity) checkLoginFree(ctx context.Context, login string) error {
	taken, err := s.LoginExists(ctx, login)
	if err != nil {
		return err
	}
	if taken {
		return ErrLoginTaken
	}
	return nil
}

// RegisterClient создаёт клиента, если логин свободен.
func (s *Identity) RegisterClient(ctx context.Context, u *model.User) error {
	if err := s.checkLoginFree(ctx, u.Login); err != nil {
		return err
	}

	u.ID = 0
	if u.Status != model.StatusBanned {
		u.Status = model.StatusNotBanned
	}
	if err := s.clients.Create(ctx, u); err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	s.audit(ctx, model.EventTypeClientRegistered, map[string]any{"clientId": u.ID, "login": u.Login})
	s.log.Info("client registered", "id", u.ID, "login", u.Login)
	return nil
}

// RegisterMaster создаёт мастера, если логин свободен.
func (s *Identity) RegisterMaster(ctx context.Context, m *model.Master) error {
	if err := s.checkLoginFree(ctx, m.Login); err != nil {
		return err
	}

	m.ID = 0
	if m.Status != model.StatusBanned {
		m.Status = model.StatusNotBanned
	}
	if err := s.masters.Create(ctx, m); err != nil {
		return fmt.Errorf("create master: %w", err)
	}

	s.audit(ctx, model.EventTypeMasterRegistered, map[string]any{"masterId": m.ID, "login": m.Login})
	s.log.Info("master registered", "id", m.ID, "login", m.Login)
	return nil
}

func (s *Identity) ClientByID(ctx context.Context, id uint) (*model.User, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *Identity) MasterByID(ctx context.Context, id uint) (*model.Master, error) {
	return s.masters.GetByID(ctx, id)
}

func (s *Identity) AdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

func (s *Identity) Clients(ctx context.Context) ([]model.User, error) {
	return s.clients.List(ctx)
}

func (s *Identity) Masters(ctx context.Context) ([]model.Master, error) {
	return s.masters.List(ctx)
}

// EditClientProfile перезаписывает профиль клиента id присланными полями.
// Смена логина проходит ту же проверку уникальности, что и регистрация.
func (s *Identity) EditClientProfile(ctx context.Context, id uint, u *model.User) error {
	current, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get client %d: %w", id, err)
	}
	if u.Login != current.Login {
		if err := s.checkLoginFree(ctx, u.Login); err != nil {
			return err
		}
	}
	u.ID = id
	if err := s.clients.Update(ctx, u); err != nil {
		return fmt.Errorf("update client %d: %w", id, err)
	}
	return nil
}

// EditMasterProfile перезаписывает профиль мастера id присланными полями.
// Смена логина проходит ту же проверку уникальности, что и регистрация.
func (s *Identity) EditMasterProfile(ctx context.Context, id uint, m *model.Master) error {
	current, err := s.masters.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get master %d: %w", id, err)
	}
	if m.Login != current.Login {
		if err := s.checkLoginFree(ctx, m.Login); err != nil {
			return err
		}
	}
	m.ID = id
	if err := s.masters.Update(ctx, m); err != nil {
		return fmt.Errorf("update master %d: %w", id, err)
	}
	return nil
}

func (s *Identity) SetClientStatus(ctx context.Context, id uint, status model.Status) error {
	if err := s.clients.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set client %d status: %w", id, err)
	}
	s.audit(ctx, model.EventTypeStatusChanged, map[string]any{"clientId": id, "status": status.String()})
	return nil
}

func (s *Identity) SetMasterStatus(ctx context.Context, id uint, status model.Status) error {
	if err := s.masters.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set master %d status: %w", id, err)
	}
	s.audit(ctx, model.EventTypeStatusChanged, map[string]any{"masterId": id, "status": status.String()})
	return nil
}

// audit пишет событие аудита; ошибка аудита не должна валить команду.
func (s *Identity) audit(ctx context.Context, t model.EventType, details map[string]any) {
	body, err := json.Marshal(details)
	if err != nil {
		s.log.Warn("marshal audit details", "event", string(t), "error", err)
		return
	}
	ev := model.Event{EventType: t, Details: datatypes.JSON(body)}
	if err := s.events.Create(ctx, &ev); err != nil {
		s.log.Warn("write audit event", "event", string(t), "error", err)
	}
}
