package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/estate/service"
)

type ContactHandler struct {
	ContactService *service.ContactService
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addNotice(w, r, danger("Error: Please fill in all required fields."))
		redirect(w, r, "/#contact")
		return
	}

	err := h.ContactService.Submit(r.Context(), service.ContactMessage{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Message: r.PostForm.Get("message"),
	})
	switch {
	case err == nil:
		addNotice(w, r, success("Thank you for your message! We will get back to you shortly."))
	case errors.Is(err, service.ErrValidation):
		addNotice(w, r, danger("Error: Please fill in all required fields."))
	default:
		addNotice(w, r, danger("Something went wrong. Please try again."))
	}
	redirect(w, r, "/#contact")
}
