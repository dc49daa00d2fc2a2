package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c := requestContext("10.0.0.1:5000", map[string]string{
		headerForwardedFor: "203.0.113.7, 10.0.0.2",
		headerRealIP:       "198.51.100.9",
	})
	assert.Equal(t, "203.0.113.7", clientIP(c))
}

func TestClientIPFallsBackToRealIP(t *testing.T) {
	c := requestContext("10.0.0.1:5000", map[string]string{
		headerRealIP: " 198.51.100.9 ",
	})
	assert.Equal(t, "198.51.100.9", clientIP(c))
}

func TestClientIPStripsPortFromRemoteAddr(t *testing.T) {
	c := requestContext("192.0.2.4:31337", nil)
	assert.Equal(t, "192.0.2.4", clientIP(c))
}
