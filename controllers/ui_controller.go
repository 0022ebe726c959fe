package controllers

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
	"github.com/ysk-ktok/dynamodb-chatbot/services"
)

//go:embed templates/chat.html
var templateFS embed.FS

var chatTemplate = template.Must(template.ParseFS(templateFS, "templates/chat.html"))

const sessionCookieName = "chat_session"

// UIController serves the server-rendered chat page. Every action posts
// back to "/" and triggers a full re-render.
type UIController struct {
	Sessions    *services.SessionService
	Interaction *services.InteractionService
}

// NewUIController initializes the UI controller
func NewUIController(sessions *services.SessionService, interaction *services.InteractionService) *UIController {
	return &UIController{Sessions: sessions, Interaction: interaction}
}

// session resolves the browser session from the cookie, creating one (and
// setting the cookie) on first contact.
func (c *UIController) session(w http.ResponseWriter, r *http.Request) *models.Session {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		id = cookie.Value
	}

	session := c.Sessions.GetOrCreate(id)
	if session.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    session.ID,
			Path:     "/",
			HttpOnly: true,
		})
	}
	return session
}

// HandlePage renders the full page for the current session.
func (c *UIController) HandlePage(w http.ResponseWriter, r *http.Request) {
	session := c.session(w, r)
	c.render(w, r, session, "")
}

// HandleAction processes one form submission: decide the implied command,
// dispatch it, then re-render. Successful actions redirect back to GET so
// a browser refresh never replays them.
func (c *UIController) HandleAction(w http.ResponseWriter, r *http.Request) {
	session := c.session(w, r)

	if err := r.ParseForm(); err != nil {
		c.render(w, r, session, "Invalid form submission")
		return
	}

	timestamp, _ := strconv.ParseInt(r.PostFormValue("timestamp"), 10, 64)
	in := services.FormInput{
		Action:         r.PostFormValue("action"),
		Role:           r.PostFormValue("role"),
		Message:        r.PostFormValue("message"),
		Timestamp:      timestamp,
		ConversationID: r.PostFormValue("conversation"),
		ShowDeleted:    r.PostFormValue("show_deleted") == "on",
		AutoResponse:   r.PostFormValue("auto_response") == "on",
	}

	cmd := c.Interaction.Decide(session, in)
	if err := c.Interaction.Dispatch(r.Context(), session, cmd); err != nil {
		log.Printf("Action '%s' failed: %v", in.Action, err)
		c.render(w, r, session, "The action failed: "+err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render rebuilds the view and writes the full page. A view error is
// shown as an inline banner; there are no retries.
func (c *UIController) render(w http.ResponseWriter, r *http.Request, session *models.Session, errorMessage string) {
	view, err := c.Interaction.BuildView(r.Context(), session)
	if err != nil {
		log.Printf("Failed to build view: %v", err)
		if errorMessage == "" {
			errorMessage = "Failed to load the conversation: " + err.Error()
		}
	}
	view.Error = errorMessage

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chatTemplate.ExecuteTemplate(w, "chat.html", view); err != nil {
		log.Printf("Failed to render page: %v", err)
	}
}
