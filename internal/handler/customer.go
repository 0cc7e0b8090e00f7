package handler

import (
	"strings"

	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/store"

	"gorm.io/gorm"
)

type customerReq struct {
	Name   string `json:"name" binding:"required,max=64"`
	Note   string `json:"note" binding:"max=255"`
	Active *bool  `json:"active"`
}

// NewCustomerHandler wires the generic CRUD handler for customers.
func NewCustomerHandler(db *gorm.DB) *CRUDHandler[models.Customer, customerReq] {
	return &CRUDHandler[models.Customer, customerReq]{
		Store:    store.New[models.Customer](db),
		Resource: "customer",
		Apply: func(in *customerReq, m *models.Customer) {
			m.Name = strings.TrimSpace(in.Name)
			m.Note = in.Note
			if in.Active != nil {
				m.Active = *in.Active
			} else if m.ID == 0 {
				m.Active = true
			}
		},
		Owner: func(m *models.Customer, userID uint) { m.UserID = userID },
	}
}
