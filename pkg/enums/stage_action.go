package enums

import "fmt"

// StageAction names the fulfillment stage being stamped on an order or item.
// Each action corresponds to exactly one timestamp column.
type StageAction string

const (
	StageActionProcessing StageAction = "processing"
	StageActionDispatched StageAction = "dispatched"
	StageActionDelivered  StageAction = "delivered"
)

var validStageActions = []StageAction{
	StageActionProcessing,
	StageActionDispatched,
	StageActionDelivered,
}

// String implements fmt.Stringer.
func (a StageAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known StageAction.
func (a StageAction) IsValid() bool {
	for _, candidate := range validStageActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseStageAction converts raw input into a StageAction.
func ParseStageAction(value string) (StageAction, error) {
	for _, candidate := range validStageActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stage action %q", value)
}
