package model

import "errors"

// User and Product are example schemas carried over from the initial project
// template. No endpoint uses them, but their collections may hold documents
// written by external consumers, so the shapes are kept until confirmed dead.

// Scaffolding validation errors.
var (
	ErrUserNameRequired        = errors.New("user name is required")
	ErrUserEmailRequired       = errors.New("user email is required")
	ErrUserEmailInvalid        = errors.New("user email is not a valid email address")
	ErrUserAddressRequired     = errors.New("user address is required")
	ErrUserAgeOutOfRange       = errors.New("user age must be between 0 and 120")
	ErrProductTitleRequired    = errors.New("product title is required")
	ErrProductPriceNegative    = errors.New("product price must not be negative")
	ErrProductCategoryRequired = errors.New("product category is required")
)

// User maps to the unused "user" collection.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Age      *int   `json:"age"`
	IsActive bool   `json:"is_active"`
}

// Validate checks the user against its schema constraints.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrUserNameRequired
	}
	if u.Email == "" {
		return ErrUserEmailRequired
	}
	if !ValidEmail(u.Email) {
		return ErrUserEmailInvalid
	}
	if u.Address == "" {
		return ErrUserAddressRequired
	}
	if u.Age != nil && (*u.Age < 0 || *u.Age > 120) {
		return ErrUserAgeOutOfRange
	}
	return nil
}

// Product maps to the unused "product" collection.
type Product struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"in_stock"`
}

// Validate checks the product against its schema constraints.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrProductTitleRequired
	}
	if p.Price < 0 {
		return ErrProductPriceNegative
	}
	if p.Category == "" {
		return ErrProductCategoryRequired
	}
	return nil
}
