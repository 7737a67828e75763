package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
	"github.com/Lerokbel/BarberShop/internal/repository"
)

var (
	// ErrInvalidReference — запись ссылается на несуществующую услугу,
	// клиента или мастера.
	ErrInvalidReference = errors.New("record references a missing row")
	// ErrAlreadyAccepted — запись уже принята другим мастером.
	ErrAlreadyAccepted = errors.New("record is already accepted")
)

// Booking отвечает за услуги и записи.
type Booking struct {
	log *slog.Logger

	purposes repository.PurposeRepository
	records  repository.RecordRepository
	clients  repository.ClientRepository
	masters  repository.MasterRepository
	events   repository.EventRepository

	// Подменяется в тестах.
	now func() time.Time
}

func NewBooking(
	log *slog.Logger,
	purposes repository.PurposeRepository,
	records repository.RecordRepository,
	clients repository.ClientRepository,
	masters repository.MasterRepository,
	events repository.EventRepository,
) *Booking {
	return &Booking{
		log:      log.With("service", "booking"),
		purposes: purposes,
		records:  records,
		clients:  clients,
		masters:  masters,
		events:   events,
		now:      time.Now,
	}
}

func (s *Booking) Purposes(ctx context.Context) ([]model.Purpose, error) {
	return s.purposes.List(ctx)
}

func (s *Booking) CreatePurpose(ctx context.Context, p *model.Purpose) error {
	p.ID = 0
	if err := s.purposes.Create(ctx, p); err != nil {
		return fmt.Errorf("create purpose: %w", err)
	}
	s.log.Info("purpose created", "id", p.ID, "name", p.Name)
	return nil
}

func (s *Booking) EditPurpose(ctx context.Context, p *model.Purpose) error {
	if err := s.purposes.Update(ctx, p); err != nil {
		return fmt.Errorf("update purpose %d: %w", p.ID, err)
	}
	return nil
}

func (s *Booking) DeletePurpose(ctx context.Context, id uint) error {
	if err := s.purposes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete purpose %d: %w", id, err)
	}
	return nil
}

// CreateRecord создаёт запись, предварительно проверив, что все
// ссылки указывают на существующие строки.
func (s *Booking) CreateRecord(ctx context.Context, rec *model.Record) error {
	if _, err := s.purposes.GetByID(ctx, rec.PurposeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: purpose %d", ErrInvalidReference, rec.PurposeID)
		}
		return fmt.Errorf("check purpose %d: %w", rec.PurposeID, err)
	}
	if _, err := s.clients.GetByID(ctx, rec.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: client %d", ErrInvalidReference, rec.ClientID)
		}
		return fmt.Errorf("check client %d: %w", rec.ClientID, err)
	}
	if rec.MasterID != nil {
		if _, err := s.masters.GetByID(ctx, *rec.MasterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: master %d", ErrInvalidReference, *rec.MasterID)
			}
			return fmt.Errorf("check master %d: %w", *rec.MasterID, err)
		}
	}

	rec.ID = 0
	if err := s.records.Create(ctx, rec); err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	s.audit(ctx, model.EventTypeRecordCreated, map[string]any{
		"recordId":  rec.ID,
		"clientId":  rec.ClientID,
		"purposeId": rec.PurposeID,
	})
	s.log.Info("record created", "id", rec.ID, "clientId", rec.ClientID)
	return nil
}

func (s *Booking) Record(ctx context.Context, id uint) (*model.Record, error) {
	return s.records.GetByID(ctx, id)
}

// AcceptRecord закрепляет запись за мастером. Повтор от того же
// мастера — no-op, запись другого мастера — ErrAlreadyAccepted.
func (s *Booking) AcceptRecord(ctx context.Context, recordID, masterID uint) error {
	if _, err := s.records.GetByID(ctx, recordID); err != nil {
		return fmt.Errorf("get record %d: %w", recordID, err)
	}

	// Запись существует, так что пустой условный UPDATE означает,
	// что её уже держит другой мастер.
	if err := s.records.Accept(ctx, recordID, masterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlreadyAccepted
		}
		return fmt.Errorf("accept record %d: %w", recordID, err)
	}

	s.audit(ctx, model.EventTypeRecordAccepted, map[string]any{"recordId": recordID, "masterId": masterID})
	s.log.Info("record accepted", "id", recordID, "masterId", masterID)
	return nil
}

// ReleaseRecord возвращает запись в пул непринятых.
func (s *Booking) ReleaseRecord(ctx context.Context, recordID uint) error {
	if err := s.records.ClearAcceptance(ctx, recordID); err != nil {
		return fmt.Errorf("release record %d: %w", recordID, err)
	}
	s.audit(ctx, model.EventTypeRecordReleased, map[string]any{"recordId": recordID})
	return nil
}

func (s *Booking) DeleteRecord(ctx context.Context, id uint) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	return nil
}

// CurrentMasterRecords — будущие записи, принятые данным мастером.
func (s *Booking) CurrentMasterRecords(ctx context.Context, masterID uint) ([]model.Record, error) {
	return s.records.ListByMaster(ctx, masterID, s.now())
}

// CurrentClientRecords — будущие записи данного клиента.
func (s *Booking) CurrentClientRecords(ctx context.Context, clientID uint) ([]model.Record, error) {
	return s.records.ListByClient(ctx, clientID, s.now())
}

func (s *Booking) NotAcceptedRecords(ctx context.Context) ([]model.Record, error) {
	return s.records.ListNotAccepted(ctx)
}

func (s *Booking) AcceptedRecords(ctx context.Context) ([]model.Record, error) {
	return s.records.ListAccepted(ctx)
}

func (s *Booking) AllRecords(ctx context.Context) ([]model.Record, error) {
	return s.records.List(ctx)
}

func (s *Booking) audit(ctx context.Context, t model.EventType, details map[string]any) {
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
