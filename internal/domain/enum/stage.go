package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Stage represents one step of the invoice wizard's linear state machine
type Stage int

const (
	StageSelectService Stage = 0
	StageCustomer      Stage = 1
	StagePayment       Stage = 2
	StageOverview      Stage = 3
	StageReceipt       Stage = 4
)

func (s Stage) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return [...]string{"SelectService", "Customer", "Payment", "Overview", "Receipt"}[s]
}

// IsValid reports whether s is one of the five wizard stages
func (s Stage) IsValid() bool {
	return s >= StageSelectService && s <= StageReceipt
}

// Next returns the stage after s. Receipt has no successor and returns itself.
func (s Stage) Next() Stage {
	if s >= StageReceipt {
		return StageReceipt
	}
	return s + 1
}

// Prev returns the stage before s. SelectService has no predecessor and returns itself.
func (s Stage) Prev() Stage {
	if s <= StageSelectService {
		return StageSelectService
	}
	return s - 1
}

func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !Stage(i).IsValid() {
			return fmt.Errorf("unknown stage %d", i)
		}
		*s = Stage(i)
		return nil
	}
	switch str {
	case "SelectService":
		*s = StageSelectService
	case "Customer":
		*s = StageCustomer
	case "Payment":
		*s = StagePayment
	case "Overview":
		*s = StageOverview
	case "Receipt":
		*s = StageReceipt
	default:
		return fmt.Errorf("unknown stage %q", str)
	}
	return nil
}

func (s Stage) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *Stage) Scan(value interface{}) error {
	if value == nil {
		*s = StageSelectService
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = Stage(v)
	case int:
		*s = Stage(v)
	}
	return nil
}
