package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/common"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
)

// requestTimestampFormat is the fixed local-time format carried in
// every request log line.
const requestTimestampFormat = "2006-01-02-15:04:05"

// RequestLogger emits one structured line per inbound request with the
// method, source IP, device classification, and URL.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			ip = fwd
		}

		client := common.ParseUserAgent(r.UserAgent())

		logging.Info("Request",
			"method", r.Method,
			"ip", ip,
			"device", string(client.Device),
			"os", client.OS,
			"browser", client.Browser,
			"url", r.URL.RequestURI(),
			"timestamp", time.Now().Format(requestTimestampFormat),
		)

		next.ServeHTTP(w, r)
	})
}
