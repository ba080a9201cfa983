package webapp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"siem-lab/models"
	"siem-lab/siem"
)

const flashCookie = "flash"

// Index renders the login form.
func (s *Server) Index(c *gin.Context) {
	clientIP := s.clientIP(c)
	s.report(c, models.Event{
		EventType: "page_access",
		Username:  "anonymous",
		IPAddress: clientIP,
		Success:   true,
		Details:   "Accessed main page",
	})

	c.HTML(http.StatusOK, "login.html", gin.H{
		"flash":    takeFlash(c),
		"clientIP": clientIP,
		"users":    s.userList,
	})
}

// Login validates submitted form credentials against the fixed table. The
// comparison is exact plaintext equality and the attempt counter increments
// before it runs, for every call regardless of outcome.
func (s *Server) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	clientIP := s.clientIP(c)

	count := s.attempts.Record(clientIP)

	stored, known := s.users[username]
	if known && stored == password {
		token := s.sessions.Create(username)
		c.SetCookie(sessionCookie, token, 0, "/", "", false, true)

		s.report(c, models.Event{
			EventType: "login_success",
			Username:  username,
			IPAddress: clientIP,
			Success:   true,
			Details:   fmt.Sprintf("Successful login - Attempt #%d", count),
		})

		setFlash(c, fmt.Sprintf("Welcome %s! Login successful.", username))
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	s.report(c, models.Event{
		EventType: "login_failed",
		Username:  username,
		IPAddress: clientIP,
		Success:   false,
		Details:   fmt.Sprintf("Failed login attempt #%d - Invalid credentials", count),
	})

	setFlash(c, "Invalid username or password!")
	c.Redirect(http.StatusFound, "/")
}

// Dashboard renders account-bound content for an active session and bounces
// everyone else back to the login page.
func (s *Server) Dashboard(c *gin.Context) {
	clientIP := s.clientIP(c)

	username, ok := s.currentUser(c)
	if !ok {
		s.report(c, models.Event{
			EventType: "unauthorized_access",
			Username:  "anonymous",
			IPAddress: clientIP,
			Success:   false,
			Details:   "Attempted to access dashboard without login",
		})
		c.Redirect(http.StatusFound, "/")
		return
	}

	s.report(c, models.Event{
		EventType: "dashboard_access",
		Username:  username,
		IPAddress: clientIP,
		Success:   true,
		Details:   "Accessed dashboard",
	})

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"username": username,
		"flash":    takeFlash(c),
		"clientIP": clientIP,
	})
}

// Logout clears the session and returns to the login page.
func (s *Server) Logout(c *gin.Context) {
	clientIP := s.clientIP(c)

	username := "unknown"
	if name, ok := s.currentUser(c); ok {
		username = name
	}

	s.report(c, models.Event{
		EventType: "logout",
		Username:  username,
		IPAddress: clientIP,
		Success:   true,
		Details:   "User logged out",
	})

	if token, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)

	setFlash(c, "You have been logged out successfully.")
	c.Redirect(http.StatusFound, "/")
}

// APIUsers discloses the full account-name list to any caller. Intentional:
// the endpoint exists to be found and abused during exercises.
func (s *Server) APIUsers(c *gin.Context) {
	s.report(c, models.Event{
		EventType: "api_access",
		Username:  "anonymous",
		IPAddress: s.clientIP(c),
		Success:   true,
		Details:   "Accessed vulnerable API endpoint",
	})

	c.JSON(http.StatusOK, gin.H{
		"users":   s.userList,
		"message": "This endpoint is vulnerable - exposes user list",
	})
}

// Health is the liveness probe; it emits no event.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vulnerable-webapp",
	})
}

// clientIP resolves the client address using a deliberately permissive trust
// order: X-Real-IP, then the first comma-separated element of
// X-Forwarded-For (untrimmed), then the transport peer. With no trusted
// proxy in front, any caller can spoof its attribution by setting these
// headers; that spoofability is part of the exercise.
func (s *Server) clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.Split(fwd, ",")[0]
	}
	return c.ClientIP()
}

func (s *Server) currentUser(c *gin.Context) (string, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return "", false
	}
	return s.sessions.Get(token)
}

func (s *Server) report(c *gin.Context, event models.Event) {
	event.UserAgent = c.GetHeader("User-Agent")
	event.Severity = siem.SeverityForOutcome(event.Success)
	s.reporter.Report(event)
	s.logger.Debug("reported event",
		zap.String("event_type", event.EventType),
		zap.String("ip", event.IPAddress))
}

func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 10, "/", "", false, false)
}

// takeFlash reads and clears the one-shot flash message.
func takeFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, false)
	return message
}
