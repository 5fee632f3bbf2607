package metadata

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusAvailable        Status = "available"
	StatusBorrowed         Status = "borrowed"
	StatusUnderMaintenance Status = "under_maintenance"
	StatusMaintenance      Status = "maintenance" // legacy alias still present in stored rows
)

func NewStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.isValid() {
		return "", fmt.Errorf("invalid asset status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusUnderMaintenance, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

type Condition string

const (
	ConditionGood Condition = "good"
	ConditionFair Condition = "fair"
	ConditionPoor Condition = "poor"
)

func NewCondition(value string) (Condition, error) {
	cond := Condition(strings.ToLower(strings.TrimSpace(value)))
	switch cond {
	case ConditionGood, ConditionFair, ConditionPoor:
		return cond, nil
	default:
		return "", fmt.Errorf("invalid asset condition: %s", value)
	}
}

func (c Condition) String() string {
	return string(c)
}
