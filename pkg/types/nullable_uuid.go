package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// NullableUUID distinguishes an absent JSON field from an explicit null.
// Valid is true whenever the field appeared in the payload; Value is nil
// when the payload carried a literal null.
type NullableUUID struct {
	Valid bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(trimmed, &id); err != nil {
		return err
	}
	n.Valid = true
	n.Value = &id
	return nil
}

// Clone returns an independent copy.
func (n NullableUUID) Clone() NullableUUID {
	if n.Value == nil {
		return NullableUUID{Valid: n.Valid}
	}
	value := *n.Value
	return NullableUUID{Valid: n.Valid, Value: &value}
}
