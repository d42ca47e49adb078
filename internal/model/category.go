package model

type Category struct {
	BaseModel
	Name       string  `db:"name" json:"name"`
	ParentID   *int64  `db:"parent_id" json:"parentId"` // Nullable
	ParentName *string `db:"parent_name" json:"parentName,omitempty"`

	// Populated by tree reads, not stored
	Subcategories []Category `db:"-" json:"subcategories,omitempty"`
	Products      []Product  `db:"-" json:"products,omitempty"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
