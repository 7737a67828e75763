package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/config"
	"github.com/Lerokbel/BarberShop/internal/db"
	"github.com/Lerokbel/BarberShop/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewGormDB(&config.DBConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return gormDB
}

//
// Клиенты: CRUD-контракт, общий для всех репозиториев.
//

func TestClientRepository_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	u := model.User{Login: "alice", Password: "pw1", FullName: "Alice A", Phone: "111", Status: model.StatusNotBanned}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != u {
		t.Fatalf("round trip mismatch: created %+v, got %+v", u, *got)
	}
}

func TestClientRepository_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	var prev uint
	for _, login := range []string{"a", "b", "c"} {
		u := model.User{Login: login, Password: "pw", Status: model.StatusNotBanned}
		if err := repo.Create(ctx, &u); err != nil {
			t.Fatalf("create %q: %v", login, err)
		}
		if u.ID <= prev {
			t.Fatalf("expected id > %d, got %d", prev, u.ID)
		}
		prev = u.ID
	}
}

func TestClientRepository_UpdateReflectsEveryField(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	u := model.User{Login: "alice", Password: "pw1", FullName: "Alice", Phone: "111", Status: model.StatusNotBanned}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}

	u.Login = "alice2"
	u.Password = "pw2"
	u.FullName = "Alice B"
	u.Phone = "222"
	u.Status = model.StatusBanned
	if err := repo.Update(ctx, &u); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != u {
		t.Fatalf("update not reflected: want %+v, got %+v", u, *got)
	}
}

func TestClientRepository_UpdateMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	ghost := model.User{ID: 404, Login: "ghost", Password: "pw"}
	if err := repo.Update(ctx, &ghost); err != nil {
		t.Fatalf("update of missing id must be silent, got %v", err)
	}

	if _, err := repo.GetByID(ctx, 404); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClientRepository_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	u := model.User{Login: "alice", Password: "pw1", Status: model.StatusNotBanned}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after delete, got %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range all {
		if c.ID == u.ID {
			t.Fatalf("deleted id %d still listed", u.ID)
		}
	}

	// Повторное удаление — тихий no-op.
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("second delete must be silent, got %v", err)
	}
}

func TestClientRepository_GetByCredentials(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	u := model.User{Login: "alice", Password: "pw1", Status: model.StatusNotBanned}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByCredentials(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected id %d, got %d", u.ID, got.ID)
	}

	if _, err := repo.GetByCredentials(ctx, "alice", "wrong"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for wrong password, got %v", err)
	}
}

func TestClientRepository_StatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGormClientRepository(openTestDB(t))

	u := model.User{Login: "alice", Password: "pw1", Status: model.StatusNotBanned}
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetStatus(ctx, u.ID, model.StatusBanned); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.StatusBanned {
		t.Fatalf("expected BANNED, got %v", got.Status)
	}

	if err := repo.SetStatus(ctx, u.ID, model.StatusNotBanned); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got, err = repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.StatusNotBanned {
		t.Fatalf("expected NOT_BANNED, got %v", got.Status)
	}
}

func TestClientRepository_CorruptStatusFlagged(t *testing.T) {
	ctx := context.Background()
	gormDB := openTestDB(t)
	repo := NewGormClientRepository(gormDB)

	// Пишем мимо модели заведомо битый статус.
	err := gormDB.Exec(
		"INSERT INTO clients (login, password, full_name, phone, status) VALUES (?, ?, ?, ?, ?)",
		"corrupt", "pw", "", "", 7,
	).Error
	if err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	if _, err := repo.GetByLogin(ctx, "corrupt"); err == nil {
		t.Fatalf("expected error reading corrupt status, got none")
	}
}

//
// Записи: фильтрация по ролям на стороне SQL.
//

func seedRecordFixture(t *testing.T, gormDB *gorm.DB) (clientID, masterA, masterB uint, records *GormRecordRepository) {
	t.Helper()
	ctx := context.Background()

	clients := NewGormClientRepository(gormDB)
	masters := NewGormMasterRepository(gormDB)
	purposes := NewGormPurposeRepository(gormDB)
	records = NewGormRecordRepository(gormDB)

	u := model.User{Login: "alice", Password: "pw1", Status: model.StatusNotBanned}
	if err := clients.Create(ctx, &u); err != nil {
		t.Fatalf("create client: %v", err)
	}
	a := model.Master{Login: "mA", Password: "pw", Status: model.StatusNotBanned}
	b := model.Master{Login: "mB", Password: "pw", Status: model.StatusNotBanned}
	if err := masters.Create(ctx, &a); err != nil {
		t.Fatalf("create master A: %v", err)
	}
	if err := masters.Create(ctx, &b); err != nil {
		t.Fatalf("create master B: %v", err)
	}
	p := model.Purpose{Name: "haircut", Cost: 1500}
	if err := purposes.Create(ctx, &p); err != nil {
		t.Fatalf("create purpose: %v", err)
	}

	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	fixture := []model.Record{
		{PurposeID: p.ID, ClientID: u.ID, MasterID: &a.ID, Time: future},
		{PurposeID: p.ID, ClientID: u.ID, MasterID: &a.ID, Time: past}, // история мастера A
		{PurposeID: p.ID, ClientID: u.ID, MasterID: &b.ID, Time: future},
		{PurposeID: p.ID, ClientID: u.ID, Time: future}, // непринятая
	}
	for i := range fixture {
		if err := records.Create(context.Background(), &fixture[i]); err != nil {
			t.Fatalf("create record %d: %v", i, err)
		}
	}

	return u.ID, a.ID, b.ID, records
}

func TestRecordRepository_RoleScopedPartition(t *testing.T) {
	ctx := context.Background()
	_, masterA, masterB, records := seedRecordFixture(t, openTestDB(t))

	now := time.Now()

	aRecs, err := records.ListByMaster(ctx, masterA, now)
	if err != nil {
		t.Fatalf("list by master A: %v", err)
	}
	if len(aRecs) != 1 {
		t.Fatalf("expected 1 current record for master A, got %d", len(aRecs))
	}
	if *aRecs[0].MasterID != masterA || !aRecs[0].Time.After(now) {
		t.Fatalf("wrong record for master A: %+v", aRecs[0])
	}

	bRecs, err := records.ListByMaster(ctx, masterB, now)
	if err != nil {
		t.Fatalf("list by master B: %v", err)
	}
	if len(bRecs) != 1 || *bRecs[0].MasterID != masterB {
		t.Fatalf("expected exactly master B's record, got %+v", bRecs)
	}

	free, err := records.ListNotAccepted(ctx)
	if err != nil {
		t.Fatalf("list not accepted: %v", err)
	}
	if len(free) != 1 || free[0].Accepted() {
		t.Fatalf("expected exactly one unaccepted record, got %+v", free)
	}

	accepted, err := records.ListAccepted(ctx)
	if err != nil {
		t.Fatalf("list accepted: %v", err)
	}
	if len(accepted) != 3 {
		t.Fatalf("expected 3 accepted records, got %d", len(accepted))
	}

	all, err := records.List(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 records, got %d", len(all))
	}
}

func TestRecordRepository_ClientScopeExcludesPast(t *testing.T) {
	ctx := context.Background()
	clientID, _, _, records := seedRecordFixture(t, openTestDB(t))

	recs, err := records.ListByClient(ctx, clientID, time.Now())
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	// 4 записи клиента, из них одна в прошлом.
	if len(recs) != 3 {
		t.Fatalf("expected 3 future records, got %d", len(recs))
	}
	for _, r := range recs {
		if r.ClientID != clientID {
			t.Fatalf("foreign record in client listing: %+v", r)
		}
		if !r.Time.After(time.Now().Add(-time.Minute)) {
			t.Fatalf("past record in current listing: %+v", r)
		}
	}
}

func TestRecordRepository_AcceptAndClear(t *testing.T) {
	ctx := context.Background()
	_, masterA, _, records := seedRecordFixture(t, openTestDB(t))

	free, err := records.ListNotAccepted(ctx)
	if err != nil || len(free) != 1 {
		t.Fatalf("fixture: %v, %d", err, len(free))
	}
	id := free[0].ID

	if err := records.Accept(ctx, id, masterA); err != nil {
		t.Fatalf("accept: %v", err)
	}
	rec, err := records.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !rec.Accepted() || *rec.MasterID != masterA {
		t.Fatalf("expected record accepted by %d, got %+v", masterA, rec)
	}

	if err := records.ClearAcceptance(ctx, id); err != nil {
		t.Fatalf("clear: %v", err)
	}
	rec, err = records.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Accepted() {
		t.Fatalf("expected record released, got master %v", rec.MasterID)
	}
}

func TestRecordRepository_AcceptIsConditional(t *testing.T) {
	ctx := context.Background()
	_, masterA, masterB, records := seedRecordFixture(t, openTestDB(t))

	free, err := records.ListNotAccepted(ctx)
	if err != nil || len(free) != 1 {
		t.Fatalf("fixture: %v, %d", err, len(free))
	}
	id := free[0].ID

	if err := records.Accept(ctx, id, masterA); err != nil {
		t.Fatalf("accept: %v", err)
	}
	// Повтор того же мастера проходит.
	if err := records.Accept(ctx, id, masterA); err != nil {
		t.Fatalf("re-accept: %v", err)
	}
	// Второй мастер не перетирает назначение, даже придя позже.
	if err := records.Accept(ctx, id, masterB); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	rec, err := records.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *rec.MasterID != masterA {
		t.Fatalf("expected master %d to keep the record, got %v", masterA, rec.MasterID)
	}
}
