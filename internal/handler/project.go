package handler

import (
	"strings"

	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/store"

	"gorm.io/gorm"
)

type projectReq struct {
	Name       string `json:"name" binding:"required,max=64"`
	CustomerID *uint  `json:"customer_id"`
	Active     *bool  `json:"active"`
}

// NewProjectHandler wires the generic CRUD handler for projects.
func NewProjectHandler(db *gorm.DB) *CRUDHandler[models.Project, projectReq] {
	return &CRUDHandler[models.Project, projectReq]{
		Store:    store.New[models.Project](db),
		Resource: "project",
		Apply: func(in *projectReq, m *models.Project) {
			m.Name = strings.TrimSpace(in.Name)
			m.CustomerID = in.CustomerID
			if in.Active != nil {
				m.Active = *in.Active
			} else if m.ID == 0 {
				m.Active = true
			}
		},
		Owner: func(m *models.Project, userID uint) { m.UserID = userID },
	}
}
