package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/Lerokbel/BarberShop/internal/model"
	"github.com/Lerokbel/BarberShop/internal/wire"
)

// handleConn — петля одного соединения: прочитать команду, прочитать
// её фиксированный набор кадров-аргументов, выполнить, записать ровно
// один кадр-результат. Ошибка канала завершает петлю; ошибка хранилища
// превращается в Response FAILED, и соединение живёт дальше.
func (s *Server) handleConn(conn *wire.Conn) {
	log := s.connLogger(conn)
	log.Info("connection accepted")

	ctx := context.Background()
	var sess Session

	for {
		kind, body, err := conn.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("peer disconnected")
			} else {
				log.Warn("read frame", "error", err)
			}
			return
		}

		switch kind {
		case wire.KindAuthCommand:
			var cmd wire.AuthorizationCommand
			if err := json.Unmarshal(body, &cmd); err != nil {
				log.Warn("decode auth command", "error", err)
				return
			}
			if err := s.dispatchAuth(ctx, conn, log, &sess, cmd); err != nil {
				log.Warn("connection aborted", "command", cmd.String(), "error", err)
				return
			}

		case wire.KindCommand:
			var cmd wire.Command
			if err := json.Unmarshal(body, &cmd); err != nil {
				log.Warn("decode command", "error", err)
				return
			}
			if cmd == wire.CmdExit {
				log.Info("exit requested")
				return
			}
			if err := s.dispatch(ctx, conn, log, sess, cmd); err != nil {
				log.Warn("connection aborted", "command", cmd.String(), "error", err)
				return
			}

		default:
			log.Warn("unexpected frame kind", "kind", kind.String())
			return
		}
	}
}

func (s *Server) dispatchAuth(ctx context.Context, conn *wire.Conn, log *slog.Logger, sess *Session, cmd wire.AuthorizationCommand) error {
	switch cmd {
	case wire.AuthAuthorize:
		var login, password string
		if err := conn.Expect(wire.KindString, &login); err != nil {
			return err
		}
		if err := conn.Expect(wire.KindString, &password); err != nil {
			return err
		}
		utype, id, err := s.identity.Authorize(ctx, login, password)
		if err != nil {
			log.Warn("authorize", "login", login, "error", err)
			return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
		}
		if utype != "" {
			*sess = Session{Type: utype, ID: id}
			log.Info("authorized", "login", login, "role", string(utype), "id", id)
		}
		return conn.WriteFrame(wire.KindUserType, utype)

	case wire.AuthRegister:
		var u model.User
		if err := conn.Expect(wire.KindUser, &u); err != nil {
			return err
		}
		return s.respond(conn, log, cmd.String(), s.identity.RegisterClient(ctx, &u))

	case wire.AuthRegisterMaster:
		var m model.Master
		if err := conn.Expect(wire.KindMaster, &m); err != nil {
			return err
		}
		return s.respond(conn, log, cmd.String(), s.identity.RegisterMaster(ctx, &m))

	case wire.AuthCheckIfLoginExists:
		var login string
		if err := conn.Expect(wire.KindString, &login); err != nil {
			return err
		}
		exists, err := s.identity.LoginExists(ctx, login)
		if err != nil {
			log.Warn("check login", "login", login, "error", err)
			return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
		}
		if exists {
			return conn.WriteFrame(wire.KindResponse, wire.ResponseSuccessfully)
		}
		return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)

	default:
		log.Warn("unknown auth command", "command", uint8(cmd))
		return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
	}
}

func (s *Server) dispatch(ctx context.Context, conn *wire.Conn, log *slog.Logger, sess Session, cmd wire.Command) error {
	switch cmd {
	case wire.CmdGetAllPurposes:
		if !sess.Authenticated() {
			return s.refuse(conn, log, sess, cmd)
		}
		purposes, err := s.booking.Purposes(ctx)
		return s.writeValue(conn, log, cmd.String(), wire.KindPurposeList, purposes, err)

	case wire.CmdCreatePurpose:
		var p model.Purpose
		if err := conn.Expect(wire.KindPurpose, &p); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeMaster, model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.booking.CreatePurpose(ctx, &p))

	case wire.CmdEditPurpose:
		var p model.Purpose
		if err := conn.Expect(wire.KindPurpose, &p); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeMaster, model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.booking.EditPurpose(ctx, &p))

	case wire.CmdDeletePurpose:
		var id uint
		if err := conn.Expect(wire.KindInt, &id); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeMaster, model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.booking.DeletePurpose(ctx, id))

	case wire.CmdBanClient, wire.CmdUnbanClient:
		var id uint
		if err := conn.Expect(wire.KindInt, &id); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		status := model.StatusBanned
		if cmd == wire.CmdUnbanClient {
			status = model.StatusNotBanned
		}
		return s.respond(conn, log, cmd.String(), s.identity.SetClientStatus(ctx, id, status))

	case wire.CmdBanMaster, wire.CmdUnbanMaster:
		var id uint
		if err := conn.Expect(wire.KindInt, &id); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		status := model.StatusBanned
		if cmd == wire.CmdUnbanMaster {
			status = model.StatusNotBanned
		}
		return s.respond(conn, log, cmd.String(), s.identity.SetMasterStatus(ctx, id, status))

	case wire.CmdRegisterMaster:
		var m model.Master
		if err := conn.Expect(wire.KindMaster, &m); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.identity.RegisterMaster(ctx, &m))

	case wire.CmdRegisterUser:
		var u model.User
		if err := conn.Expect(wire.KindUser, &u); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.identity.RegisterClient(ctx, &u))

	case wire.CmdGetAllCurrentMasterRecords:
		if !sess.Is(model.UserTypeMaster) {
			return s.refuse(conn, log, sess, cmd)
		}
		records, err := s.booking.CurrentMasterRecords(ctx, sess.ID)
		return s.writeValue(conn, log, cmd.String(), wire.KindRecordList, records, err)

	case wire.CmdGetAllCurrentClientRecords:
		if !sess.Is(model.UserTypeUser) {
			return s.refuse(conn, log, sess, cmd)
		}
		records, err := s.booking.CurrentClientRecords(ctx, sess.ID)
		return s.writeValue(conn, log, cmd.String(), wire.KindRecordList, records, err)

	case wire.CmdGetAllRecordsNotAccepted:
		if !sess.Is(model.UserTypeMaster, model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		records, err := s.booking.NotAcceptedRecords(ctx)
		return s.writeValue(conn, log, cmd.String(), wire.KindRecordList, records, err)

	case wire.CmdGetAllRecords:
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		records, err := s.booking.AllRecords(ctx)
		return s.writeValue(conn, log, cmd.String(), wire.KindRecordList, records, err)

	case wire.CmdGetAllRecordsAccepted:
		if !sess.Is(model.UserTypeMaster, model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		records, err := s.booking.AcceptedRecords(ctx)
		return s.writeValue(conn, log, cmd.String(), wire.KindRecordList, records, err)

	case wire.CmdGetAllClients:
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		clients, err := s.identity.Clients(ctx)
		return s.writeValue(conn, log, cmd.String(), wire.KindUserList, clients, err)

	case wire.CmdGetAllMasters:
		if !sess.Is(model.UserTypeAdmin) {
			return s.refuse(conn, log, sess, cmd)
		}
		masters, err := s.identity.Masters(ctx)
		return s.writeValue(conn, log, cmd.String(), wire.KindMasterList, masters, err)

	case wire.CmdAcceptRecordToCurrentMaster:
		var id uint
		if err := conn.Expect(wire.KindInt, &id); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeMaster) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.booking.AcceptRecord(ctx, id, sess.ID))

	case wire.CmdDeleteRecord:
		var id uint
		if err := conn.Expect(wire.KindInt, &id); err != nil {
			return err
		}
		if !s.mayDeleteRecord(ctx, sess, id) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.booking.DeleteRecord(ctx, id))

	case wire.CmdDeleteAcception:
		var id uint
		if err := conn.Expect(wire.KindInt, &id); err != nil {
			return err
		}
		if !s.mayReleaseRecord(ctx, sess, id) {
			return s.refuse(conn, log, sess, cmd)
		}
		return s.respond(conn, log, cmd.String(), s.booking.ReleaseRecord(ctx, id))

	case wire.CmdCreateRecord:
		var rec model.Record
		if err := conn.Expect(wire.KindRecord, &rec); err != nil {
			return err
		}
		if !sess.Is(model.UserTypeUser) {
			return s.refuse(conn, log, sess, cmd)
		}
		// Клиент записывает только себя, и только в пул непринятых:
		// мастера запись получает через ACCEPT, а не из кадра клиента.
		rec.ClientID = sess.ID
		rec.MasterID = nil
		return s.respond(conn, log, cmd.String(), s.booking.CreateRecord(ctx, &rec))

	case wire.CmdGetCurrentProfile:
		return s.writeProfile(ctx, conn, log, sess)

	case wire.CmdEditCurrentProfile:
		return s.editProfile(ctx, conn, log, sess)

	default:
		log.Warn("unknown command", "command", uint8(cmd))
		return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
	}
}

func (s *Server) writeProfile(ctx context.Context, conn *wire.Conn, log *slog.Logger, sess Session) error {
	switch sess.Type {
	case model.UserTypeUser:
		u, err := s.identity.ClientByID(ctx, sess.ID)
		return s.writeValue(conn, log, "GET_CURRENT_PROFILE", wire.KindUser, u, err)
	case model.UserTypeMaster:
		m, err := s.identity.MasterByID(ctx, sess.ID)
		return s.writeValue(conn, log, "GET_CURRENT_PROFILE", wire.KindMaster, m, err)
	case model.UserTypeAdmin:
		a, err := s.identity.AdminByID(ctx, sess.ID)
		return s.writeValue(conn, log, "GET_CURRENT_PROFILE", wire.KindAdmin, a, err)
	default:
		return s.refuse(conn, log, sess, wire.CmdGetCurrentProfile)
	}
}

// editProfile читает (UserType, сущность): тип определяет, какой кадр
// идёт следом, поэтому пара читается целиком до проверки прав.
func (s *Server) editProfile(ctx context.Context, conn *wire.Conn, log *slog.Logger, sess Session) error {
	var utype model.UserType
	if err := conn.Expect(wire.KindUserType, &utype); err != nil {
		return err
	}

	switch utype {
	case model.UserTypeUser:
		var u model.User
		if err := conn.Expect(wire.KindUser, &u); err != nil {
			return err
		}
		if sess.Type != model.UserTypeUser {
			return s.refuse(conn, log, sess, wire.CmdEditCurrentProfile)
		}
		return s.respond(conn, log, "EDIT_CURRENT_PROFILE", s.identity.EditClientProfile(ctx, sess.ID, &u))

	case model.UserTypeMaster:
		var m model.Master
		if err := conn.Expect(wire.KindMaster, &m); err != nil {
			return err
		}
		if sess.Type != model.UserTypeMaster {
			return s.refuse(conn, log, sess, wire.CmdEditCurrentProfile)
		}
		return s.respond(conn, log, "EDIT_CURRENT_PROFILE", s.identity.EditMasterProfile(ctx, sess.ID, &m))

	default:
		log.Warn("edit profile with unsupported type", "type", string(utype))
		return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
	}
}

// mayDeleteRecord: админ удаляет любую запись, клиент — только свою.
func (s *Server) mayDeleteRecord(ctx context.Context, sess Session, recordID uint) bool {
	if sess.Is(model.UserTypeAdmin) {
		return true
	}
	if !sess.Is(model.UserTypeUser) {
		return false
	}
	rec, err := s.booking.Record(ctx, recordID)
	if err != nil {
		return false
	}
	return rec.ClientID == sess.ID
}

// mayReleaseRecord: админ снимает любое назначение, мастер — только своё.
func (s *Server) mayReleaseRecord(ctx context.Context, sess Session, recordID uint) bool {
	if sess.Is(model.UserTypeAdmin) {
		return true
	}
	if !sess.Is(model.UserTypeMaster) {
		return false
	}
	rec, err := s.booking.Record(ctx, recordID)
	if err != nil || !rec.Accepted() {
		return false
	}
	return *rec.MasterID == sess.ID
}

// respond переводит исход команды в Response-кадр; ошибка хранилища
// не валит соединение.
func (s *Server) respond(conn *wire.Conn, log *slog.Logger, cmd string, err error) error {
	if err != nil {
		log.Warn("command failed", "command", cmd, "error", err)
		return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
	}
	return conn.WriteFrame(wire.KindResponse, wire.ResponseSuccessfully)
}

// writeValue пишет кадр-значение, а при ошибке хранилища — Response
// FAILED вместо значения: тег кадра позволяет клиенту отличить отказ
// от результата без рассинхронизации потока.
func (s *Server) writeValue(conn *wire.Conn, log *slog.Logger, cmd string, kind wire.Kind, v any, err error) error {
	if err != nil {
		log.Warn("command failed", "command", cmd, "error", err)
		return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
	}
	return conn.WriteFrame(kind, v)
}

func (s *Server) refuse(conn *wire.Conn, log *slog.Logger, sess Session, cmd wire.Command) error {
	log.Warn("command refused", "command", cmd.String(), "role", string(sess.Type))
	return conn.WriteFrame(wire.KindResponse, wire.ResponseFailed)
}
