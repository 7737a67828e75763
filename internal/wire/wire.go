// Package wire реализует протокол обмена между клиентом и сервером:
// поверх одного TCP-соединения идёт строгая последовательность кадров,
// без мультиплексирования. Каждый кадр самоописываемый:
//
//	kind (1 байт) | length (uint32, big-endian) | body (JSON, length байт)
//
// Обе стороны читают кадры строго в том порядке, который задаёт команда;
// благодаря тегу kind ошибка на одной команде не рассинхронизирует поток.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"
)

// Kind — тег кадра: какого типа значение лежит в теле.
type Kind uint8

const (
	KindAuthCommand Kind = iota + 1
	KindCommand
	KindResponse
	KindUserType
	KindString
	KindInt
	KindUser
	KindMaster
	KindAdmin
	KindPurpose
	KindRecord
	KindUserList
	KindMasterList
	KindPurposeList
	KindRecordList
)

func (k Kind) String() string {
	switch k {
	case KindAuthCommand:
		return "auth_command"
	case KindCommand:
		return "command"
	case KindResponse:
		return "response"
	case KindUserType:
		return "user_type"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUser:
		return "user"
	case KindMaster:
		return "master"
	case KindAdmin:
		return "admin"
	case KindPurpose:
		return "purpose"
	case KindRecord:
		return "record"
	case KindUserList:
		return "user_list"
	case KindMasterList:
		return "master_list"
	case KindPurposeList:
		return "purpose_list"
	case KindRecordList:
		return "record_list"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MaxFrameSize — предел размера тела кадра.
const MaxFrameSize = 1 << 20

const headerSize = 5

// Conn оборачивает net.Conn в канал кадров. Не потокобезопасен:
// протокол и так исключает параллельные запросы в одном соединении.
type Conn struct {
	nc   net.Conn
	idle time.Duration
}

func NewConn(nc net.Conn) *Conn {
	return &Conn{nc: nc}
}

// Dial открывает соединение с сервером и возвращает готовый канал.
func Dial(addr string) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &ChannelError{Op: "dial", Err: err}
	}
	return NewConn(nc), nil
}

// SetIdleTimeout задаёт предел ожидания следующего кадра.
// Ноль — ждать бесконечно.
func (c *Conn) SetIdleTimeout(d time.Duration) { c.idle = d }

func (c *Conn) Close() error { return c.nc.Close() }

func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }

// WriteFrame кодирует значение в JSON и отправляет один кадр,
// сразу сбрасывая его в сеть, чтобы пир увидел кадр без задержки.
func (c *Conn) WriteFrame(k Kind, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return &ChannelError{Op: "encode", Err: err}
	}
	if len(body) > MaxFrameSize {
		return &ChannelError{Op: "encode", Err: fmt.Errorf("frame body %d bytes exceeds limit %d", len(body), MaxFrameSize)}
	}

	buf := make([]byte, headerSize+len(body))
	buf[0] = byte(k)
	binary.BigEndian.PutUint32(buf[1:headerSize], uint32(len(body)))
	copy(buf[headerSize:], body)

	if _, err := c.nc.Write(buf); err != nil {
		return &ChannelError{Op: "write", Err: err}
	}
	return nil
}

// ReadFrame блокируется до прихода одного полного кадра.
func (c *Conn) ReadFrame() (Kind, []byte, error) {
	if c.idle > 0 {
		if err := c.nc.SetReadDeadline(time.Now().Add(c.idle)); err != nil {
			return 0, nil, &ChannelError{Op: "read", Err: err}
		}
	}

	var hdr [headerSize]byte
	if _, err := io.ReadFull(c.nc, hdr[:]); err != nil {
		return 0, nil, &ChannelError{Op: "read", Err: err}
	}

	n := binary.BigEndian.Uint32(hdr[1:])
	if n > MaxFrameSize {
		return 0, nil, &ChannelError{Op: "read", Err: fmt.Errorf("frame body %d bytes exceeds limit %d", n, MaxFrameSize)}
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(c.nc, body); err != nil {
		return 0, nil, &ChannelError{Op: "read", Err: err}
	}
	return Kind(hdr[0]), body, nil
}

// Expect читает один кадр и декодирует его в dst, требуя совпадения тега.
func (c *Conn) Expect(k Kind, dst any) error {
	got, body, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if got != k {
		return &ChannelError{Op: "decode", Err: fmt.Errorf("expected %s frame, got %s", k, got)}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ChannelError{Op: "decode", Err: err}
	}
	return nil
}
