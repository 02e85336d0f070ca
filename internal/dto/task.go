package dto

import "encoding/json"

// NullString distinguishes a JSON key that is absent from one that is
// explicitly null. The zero value means the key was not present; an explicit
// null sets the key but leaves the value invalid.
type NullString struct {
	set   bool
	valid bool
	value string
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	n.set = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		n.valid = false
		n.value = ""
		return nil
	}
	n.valid = true
	n.value = *raw
	return nil
}

// Set reports whether the key appeared in the JSON body at all.
func (n NullString) Set() bool { return n.set }

// Ptr returns the value for use in service/domain: nil for explicit null.
func (n NullString) Ptr() *string {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// UpdateTaskRequest is a merge-patch: only keys present in the body are
// applied. Title and Completed cannot legally be null, so a nil pointer
// covers both "absent" and "null". Description may be cleared with an
// explicit null, hence the tri-state type.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description NullString `json:"description"`
	Completed   *bool      `json:"completed"`
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}
