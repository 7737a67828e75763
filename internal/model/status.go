package model

import (
	"database/sql/driver"
	"fmt"
)

// Status — статус блокировки клиента или мастера.
// В базе хранится как целое: 0 — заблокирован, 1 — не заблокирован.
type Status int

const (
	StatusBanned    Status = 0
	StatusNotBanned Status = 1
)

func (s Status) Valid() bool {
	return s == StatusBanned || s == StatusNotBanned
}

func (s Status) String() string {
	switch s {
	case StatusBanned:
		return "BANNED"
	case StatusNotBanned:
		return "NOT_BANNED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Scan читает статус из колонки. Любое значение кроме 0 и 1 —
// признак повреждённых данных, такие строки не читаются молча.
func (s *Status) Scan(value any) error {
	var v int64
	switch t := value.(type) {
	case int64:
		v = t
	case int:
		v = int64(t)
	case []byte:
		if _, err := fmt.Sscan(string(t), &v); err != nil {
			return fmt.Errorf("status: cannot parse %q", string(t))
		}
	case nil:
		return fmt.Errorf("status: NULL is not a valid status")
	default:
		return fmt.Errorf("status: unsupported column type %T", value)
	}

	st := Status(v)
	if !st.Valid() {
		return fmt.Errorf("status: invalid stored value %d", v)
	}
	*s = st
	return nil
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("status: refusing to store invalid value %d", int(s))
	}
	return int64(s), nil
}
