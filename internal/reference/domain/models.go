package domain

// Reference tables: rows products point to but that are not themselves
// product data. Created by the seed routine only; there is no UI to add them.

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(120);not null;uniqueIndex:ux_categories_name"`
}

func (Category) TableName() string { return "categories" }

type Supplier struct {
	ID           int64   `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"type:varchar(150);not null;uniqueIndex:ux_suppliers_name"`
	ContactEmail *string `json:"contact_email,omitempty" gorm:"type:varchar(200)"`
}

func (Supplier) TableName() string { return "suppliers" }

type Location struct {
	ID      int64   `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"type:varchar(150);not null;uniqueIndex:ux_locations_name"`
	Address *string `json:"address,omitempty" gorm:"type:varchar(250)"`
}

func (Location) TableName() string { return "locations" }
