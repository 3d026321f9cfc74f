package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vizalsl/portfolio/internal/contact"
	"github.com/vizalsl/portfolio/internal/content"
	"github.com/vizalsl/portfolio/internal/gallery"
)

type pageData struct {
	Site    *content.Site
	Gallery gallery.View
	Contact contactView
	Year    int
}

type contactView struct {
	Values  contact.Message
	Missing []string
	Error   string
}

type contactSuccess struct {
	ReceiptID    string
	ResetAfterMS int64
}

type contactRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}

func (r contactRequest) message() contact.Message {
	return contact.Message{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

func registerRoutes(r *gin.Engine, s *Server, corsHandler gin.HandlerFunc) {
	r.GET("/", s.handleIndex)
	r.GET("/projects", s.handleGallery)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	if corsHandler != nil {
		api.Use(corsHandler)
	}
	{
		api.GET("/projects", s.handleAPIProjects)
		api.GET("/projects/:id", s.handleAPIProject)
		api.GET("/filters", s.handleAPIFilters)
		api.GET("/blogs", s.handleAPIBlogs)
		api.GET("/stats", s.handleAPIStats)
		api.POST("/contact", s.handleAPIContact)
	}
}

// galleryState rebuilds the view state carried in the query string.
func galleryState(c *gin.Context) *gallery.State {
	state := gallery.New()
	state.SetFilter(c.Query("filter"))
	if id := strings.TrimSpace(c.Query("project")); id != "" {
		state.Select(id)
	}
	return state
}

func (s *Server) galleryView(c *gin.Context) gallery.View {
	return galleryState(c).View(s.site.Catalog, s.site.ExtraFilters...)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Site:    s.site,
		Gallery: s.galleryView(c),
		Year:    s.now().Year(),
	})
}

func (s *Server) handleGallery(c *gin.Context) {
	c.HTML(http.StatusOK, "gallery.html", s.galleryView(c))
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form.html", contactView{})
}

// handleContact answers the HTMX form. Every outcome is a 200 fragment so
// htmx swaps it in.
func (s *Server) handleContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "contact-form.html", contactView{Error: "Sorry, that message could not be read."})
		return
	}
	msg := req.message()

	receipt, err := s.submitContact(c.Request.Context(), msg)
	switch {
	case errors.Is(err, contact.ErrIncomplete):
		c.HTML(http.StatusOK, "contact-form.html", contactView{
			Values:  msg,
			Missing: fieldNames(msg.Missing()),
			Error:   "Please fill in every field.",
		})
	case err != nil:
		s.logger.Error("contact submission failed", "error", err)
		c.HTML(http.StatusOK, "contact-form.html", contactView{
			Values: msg,
			Error:  "Sorry, there was an error sending your message. Please try again later.",
		})
	default:
		c.HTML(http.StatusOK, "contact-success.html", contactSuccess{
			ReceiptID:    receipt.ID,
			ResetAfterMS: s.displayWindow.Milliseconds(),
		})
	}
}

// submitContact runs one submission through a form scoped to the request.
func (s *Server) submitContact(ctx context.Context, msg contact.Message) (contact.Receipt, error) {
	form := contact.NewForm(s.sender,
		contact.WithDisplayWindow(s.displayWindow),
		contact.WithOnChange(func(st contact.State) {
			s.logger.Debug("contact form", "state", st.String())
		}),
	)
	defer form.Close()

	for _, f := range contact.Fields {
		if err := form.Set(f, msg.Get(f)); err != nil {
			return contact.Receipt{}, err
		}
	}
	receipt, err := form.Submit(ctx)
	if err == nil {
		s.logger.Info("contact message sent", "receipt", receipt.ID)
	}
	return receipt, err
}

func fieldNames(fields []contact.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}
