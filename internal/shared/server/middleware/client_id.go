package middleware

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	clientIDKey = "clientId"

	// DefaultClientID namespaces requests that do not identify a client.
	DefaultClientID = "local"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// ClientID reads X-Client-Id and stores the namespace for per-client state.
// Missing or unusable values fall back to DefaultClientID; there is no authentication.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Client-Id"))
		if !clientIDPattern.MatchString(id) {
			id = DefaultClientID
		}
		c.Set(clientIDKey, id)
		c.Next()
	}
}

// ClientIDFromContext fetches the namespace set by the ClientID middleware.
func ClientIDFromContext(c *gin.Context) string {
	if c == nil {
		return DefaultClientID
	}
	val, _ := c.Get(clientIDKey)
	if id, ok := val.(string); ok && id != "" {
		return id
	}
	return DefaultClientID
}
