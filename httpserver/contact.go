package httpserver

import (
	"net/http"
	"strconv"

	"contactbook/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterContactRoutes() {
	s.Router.GET("/contacts", s.handleListContacts)
	s.Router.GET("/contacts/:id", s.handleGetContact)
	s.Router.POST("/contacts", s.handleAddContact)
	s.Router.PATCH("/contacts/:id", s.handleUpdateContact)
	s.Router.DELETE("/contacts/:id", s.handleDeleteContact)
}

// handleListContacts godoc
// @Summary List contacts
// @Description All contacts ordered by ascending id
// @Tags contacts
// @Success 200 {object} APIResponse
// @Router /contacts [get]
func (s *Server) handleListContacts(c echo.Context) error {
	contacts, err := s.ContactService.ListContacts(c.Request().Context())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, contacts)
}

// handleGetContact godoc
// @Summary Get a contact
// @Tags contacts
// @Param id path int true "Contact id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /contacts/{id} [get]
func (s *Server) handleGetContact(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}

	found, err := s.ContactService.GetContact(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, found)
}

// handleAddContact godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Success 201 {object} APIResponse
// @Router /contacts [post]
func (s *Server) handleAddContact(c echo.Context) error {
	var req CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	created, err := s.ContactService.AddContact(c.Request().Context(), req.ToContact())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, created)
}

// handleUpdateContact godoc
// @Summary Patch a contact
// @Description Fields present in the body overwrite stored values; absent fields are kept
// @Tags contacts
// @Accept json
// @Param id path int true "Contact id"
// @Success 201 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /contacts/{id} [patch]
func (s *Server) handleUpdateContact(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}

	var req UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	updated, err := s.ContactService.UpdateContact(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, updated)
}

// handleDeleteContact godoc
// @Summary Delete a contact
// @Description Removes the contact and echoes its last stored value
// @Tags contacts
// @Param id path int true "Contact id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /contacts/{id} [delete]
func (s *Server) handleDeleteContact(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}

	removed, err := s.ContactService.DeleteContact(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, removed)
}

func contactID(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid contact id %q", raw)
	}
	return id, nil
}
