package infrastructure

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultKiteTimeout = 15 * time.Second

// NewKiteHTTPClient builds the client every Kite call goes through: a cookie
// jar, because the session credential arrives as a Set-Cookie on the 2FA
// response, and a bounded timeout so no call can block forever.
func NewKiteHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultKiteTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		// cookiejar.New(nil) cannot fail today; guard anyway.
		logrus.Errorf("cookie jar init failed: %v", err)
		jar = nil
	}

	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}
}
