package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SnowflakeList maps a jsonb column holding a list of Discord snowflake
// ids to an int64 slice.
type SnowflakeList []int64

func (l SnowflakeList) Value() (driver.Value, error) {
	if l == nil {
		l = SnowflakeList{}
	}

	return json.Marshal(l)
}

func (l *SnowflakeList) Scan(src interface{}) error {
	if src == nil {
		*l = SnowflakeList{}
		return nil
	}

	var raw []byte
	switch src := src.(type) {
	case []byte:
		raw = src
	case string:
		raw = []byte(src)
	default:
		return fmt.Errorf("unsupported source type for SnowflakeList: %T", src)
	}

	return json.Unmarshal(raw, l)
}
