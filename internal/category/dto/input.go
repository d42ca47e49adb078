package dto

import (
	"bytes"
	"encoding/json"
)

type CreateCategoryInput struct {
	Name     string
	ParentID *int64
}

// UpdateCategoryInput leaves the parent untouched unless ParentSet is true.
// With ParentSet and a nil ParentID the category moves to the top level.
type UpdateCategoryInput struct {
	ID        int64
	Name      string
	ParentID  *int64
	ParentSet bool
}

type CategoryRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	ParentID *int64 `json:"parentId" validate:"omitempty,gt=0"`
}

type UpdateCategoryRequest struct {
	Name     string     `json:"name" validate:"notblank,max=120"`
	ParentID OptionalID `json:"parentId"`
}

// OptionalID tells an absent JSON field apart from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
