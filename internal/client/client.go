// Package client — фасад протокола для клиентского процесса:
// по одному синхронному методу на команду. Любая ошибка метода означает
// потерю соединения либо отказ сервера; переподключение — на вызывающем.
package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lerokbel/BarberShop/internal/config"
	"github.com/Lerokbel/BarberShop/internal/model"
	"github.com/Lerokbel/BarberShop/internal/wire"
)

// ErrRefused — сервер ответил отказом там, где ожидалось значение
// (нет прав, нет сессии или отказало хранилище).
var ErrRefused = errors.New("server refused the request")

type Client struct {
	conn *wire.Conn
}

// Dial устанавливает соединение с сервером.
func Dial(addr string) (*Client, error) {
	conn, err := wire.Dial(addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// DialConfig подключается по адресу из конфигурации окружения.
func DialConfig(cfg *config.ClientConfig) (*Client, error) {
	return Dial(cfg.Addr())
}

func (c *Client) Close() error { return c.conn.Close() }

// Exit сообщает серверу о завершении и закрывает соединение.
func (c *Client) Exit() error {
	if err := c.conn.WriteFrame(wire.KindCommand, wire.CmdExit); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// expect читает кадр результата. Response-кадр на месте значения —
// это отказ сервера, а не рассинхронизация.
func (c *Client) expect(k wire.Kind, dst any) error {
	got, body, err := c.conn.ReadFrame()
	if err != nil {
		return err
	}
	if got == wire.KindResponse && k != wire.KindResponse {
		var resp wire.Response
		if err := json.Unmarshal(body, &resp); err != nil {
			return &wire.ChannelError{Op: "decode", Err: err}
		}
		return fmt.Errorf("%w: %s", ErrRefused, resp)
	}
	if got != k {
		return &wire.ChannelError{Op: "decode", Err: fmt.Errorf("expected %s frame, got %s", k, got)}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &wire.ChannelError{Op: "decode", Err: err}
	}
	return nil
}

// SignIn авторизует соединение. Пустой UserType — пара не найдена.
func (c *Client) SignIn(login, password string) (model.UserType, error) {
	if err := c.conn.WriteFrame(wire.KindAuthCommand, wire.AuthAuthorize); err != nil {
		return "", err
	}
	if err := c.conn.WriteFrame(wire.KindString, login); err != nil {
		return "", err
	}
	if err := c.conn.WriteFrame(wire.KindString, password); err != nil {
		return "", err
	}
	var utype model.UserType
	if err := c.expect(wire.KindUserType, &utype); err != nil {
		return "", err
	}
	return utype, nil
}

// Register регистрирует нового клиента.
func (c *Client) Register(u model.User) (wire.Response, error) {
	if err := c.conn.WriteFrame(wire.KindAuthCommand, wire.AuthRegister); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(wire.KindUser, u); err != nil {
		return 0, err
	}
	return c.readResponse()
}

// RegisterMaster регистрирует нового мастера.
func (c *Client) RegisterMaster(m model.Master) (wire.Response, error) {
	if err := c.conn.WriteFrame(wire.KindAuthCommand, wire.AuthRegisterMaster); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(wire.KindMaster, m); err != nil {
		return 0, err
	}
	return c.readResponse()
}

// LoginExists — проверка занятости логина при регистрации.
func (c *Client) LoginExists(login string) (bool, error) {
	if err := c.conn.WriteFrame(wire.KindAuthCommand, wire.AuthCheckIfLoginExists); err != nil {
		return false, err
	}
	if err := c.conn.WriteFrame(wire.KindString, login); err != nil {
		return false, err
	}
	resp, err := c.readResponse()
	if err != nil {
		return false, err
	}
	return resp == wire.ResponseSuccessfully, nil
}

func (c *Client) Purposes() ([]model.Purpose, error) {
	var purposes []model.Purpose
	err := c.query(wire.CmdGetAllPurposes, wire.KindPurposeList, &purposes)
	return purposes, err
}

func (c *Client) CreatePurpose(p model.Purpose) (wire.Response, error) {
	return c.mutate(wire.CmdCreatePurpose, wire.KindPurpose, p)
}

func (c *Client) EditPurpose(p model.Purpose) (wire.Response, error) {
	return c.mutate(wire.CmdEditPurpose, wire.KindPurpose, p)
}

func (c *Client) DeletePurpose(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdDeletePurpose, wire.KindInt, id)
}

func (c *Client) BanClient(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdBanClient, wire.KindInt, id)
}

func (c *Client) UnbanClient(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdUnbanClient, wire.KindInt, id)
}

func (c *Client) BanMaster(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdBanMaster, wire.KindInt, id)
}

func (c *Client) UnbanMaster(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdUnbanMaster, wire.KindInt, id)
}

// CreateMaster — регистрация мастера администратором.
func (c *Client) CreateMaster(m model.Master) (wire.Response, error) {
	return c.mutate(wire.CmdRegisterMaster, wire.KindMaster, m)
}

// CreateUser — регистрация клиента администратором.
func (c *Client) CreateUser(u model.User) (wire.Response, error) {
	return c.mutate(wire.CmdRegisterUser, wire.KindUser, u)
}

func (c *Client) CurrentMasterRecords() ([]model.Record, error) {
	var records []model.Record
	err := c.query(wire.CmdGetAllCurrentMasterRecords, wire.KindRecordList, &records)
	return records, err
}

func (c *Client) CurrentClientRecords() ([]model.Record, error) {
	var records []model.Record
	err := c.query(wire.CmdGetAllCurrentClientRecords, wire.KindRecordList, &records)
	return records, err
}

func (c *Client) NotAcceptedRecords() ([]model.Record, error) {
	var records []model.Record
	err := c.query(wire.CmdGetAllRecordsNotAccepted, wire.KindRecordList, &records)
	return records, err
}

func (c *Client) AllRecords() ([]model.Record, error) {
	var records []model.Record
	err := c.query(wire.CmdGetAllRecords, wire.KindRecordList, &records)
	return records, err
}

func (c *Client) AcceptedRecords() ([]model.Record, error) {
	var records []model.Record
	err := c.query(wire.CmdGetAllRecordsAccepted, wire.KindRecordList, &records)
	return records, err
}

func (c *Client) Clients() ([]model.User, error) {
	var clients []model.User
	err := c.query(wire.CmdGetAllClients, wire.KindUserList, &clients)
	return clients, err
}

func (c *Client) Masters() ([]model.Master, error) {
	var masters []model.Master
	err := c.query(wire.CmdGetAllMasters, wire.KindMasterList, &masters)
	return masters, err
}

// AcceptRecord закрепляет запись за мастером текущей сессии.
func (c *Client) AcceptRecord(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdAcceptRecordToCurrentMaster, wire.KindInt, id)
}

func (c *Client) DeleteRecord(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdDeleteRecord, wire.KindInt, id)
}

func (c *Client) DeleteAcception(id uint) (wire.Response, error) {
	return c.mutate(wire.CmdDeleteAcception, wire.KindInt, id)
}

func (c *Client) CreateRecord(r model.Record) (wire.Response, error) {
	return c.mutate(wire.CmdCreateRecord, wire.KindRecord, r)
}

func (c *Client) ClientProfile() (model.User, error) {
	var u model.User
	err := c.query(wire.CmdGetCurrentProfile, wire.KindUser, &u)
	return u, err
}

func (c *Client) MasterProfile() (model.Master, error) {
	var m model.Master
	err := c.query(wire.CmdGetCurrentProfile, wire.KindMaster, &m)
	return m, err
}

func (c *Client) AdminProfile() (model.Admin, error) {
	var a model.Admin
	err := c.query(wire.CmdGetCurrentProfile, wire.KindAdmin, &a)
	return a, err
}

func (c *Client) EditClientProfile(u model.User) (wire.Response, error) {
	if err := c.conn.WriteFrame(wire.KindCommand, wire.CmdEditCurrentProfile); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(wire.KindUserType, model.UserTypeUser); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(wire.KindUser, u); err != nil {
		return 0, err
	}
	return c.readResponse()
}

func (c *Client) EditMasterProfile(m model.Master) (wire.Response, error) {
	if err := c.conn.WriteFrame(wire.KindCommand, wire.CmdEditCurrentProfile); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(wire.KindUserType, model.UserTypeMaster); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(wire.KindMaster, m); err != nil {
		return 0, err
	}
	return c.readResponse()
}

// query — команда без аргументов, ответ-значение.
func (c *Client) query(cmd wire.Command, kind wire.Kind, dst any) error {
	if err := c.conn.WriteFrame(wire.KindCommand, cmd); err != nil {
		return err
	}
	return c.expect(kind, dst)
}

// mutate — команда с одним аргументом, ответ-Response.
func (c *Client) mutate(cmd wire.Command, kind wire.Kind, payload any) (wire.Response, error) {
	if err := c.conn.WriteFrame(wire.KindCommand, cmd); err != nil {
		return 0, err
	}
	if err := c.conn.WriteFrame(kind, payload); err != nil {
		return 0, err
	}
	return c.readResponse()
}

func (c *Client) readResponse() (wire.Response, error) {
	var resp wire.Response
	if err := c.expect(wire.KindResponse, &resp); err != nil {
		return 0, err
	}
	return resp, nil
}
