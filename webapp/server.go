// Package webapp implements the deliberately vulnerable login service used
// as a brute-force target in SIEM monitoring exercises. The weaknesses here
// (plaintext credential comparison, user-list disclosure, header-trusting
// client IP attribution) are the point of the fixture, not defects.
package webapp

import (
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"siem-lab/siem"
)

const sessionCookie = "session_token"

// Server owns the credential service's process-wide state: the immutable
// credential table, the session store, and the attempt tracker. All of it is
// injected at construction; handlers are methods so nothing is ambient.
type Server struct {
	users    map[string]string
	userList []string
	sessions *SessionStore
	attempts *AttemptTracker
	reporter siem.Reporter
	logger   *zap.Logger
}

// NewServer builds the service around a fixed credential table. The table is
// copied and never mutated afterwards.
func NewServer(users map[string]string, attempts *AttemptTracker, reporter siem.Reporter, logger *zap.Logger) *Server {
	table := make(map[string]string, len(users))
	names := make([]string, 0, len(users))
	for name, pass := range users {
		table[name] = pass
		names = append(names, name)
	}
	sort.Strings(names)

	return &Server{
		users:    table,
		userList: names,
		sessions: NewSessionStore(),
		attempts: attempts,
		reporter: reporter,
		logger:   logger,
	}
}

// Register wires the service's routes onto router.
func (s *Server) Register(router *gin.Engine) {
	router.GET("/", s.Index)
	router.POST("/login", s.Login)
	router.GET("/dashboard", s.Dashboard)
	router.GET("/logout", s.Logout)
	router.GET("/api/users", s.APIUsers)
	router.GET("/health", s.Health)
}
