package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	t.Helper()
	_, n, err := net.ParseCIDR(s)
	require.NoError(t, err)
	return n
}

func TestProxyHeaders(t *testing.T) {
	trusted := []*net.IPNet{mustCIDR(t, "10.0.0.0/8")}

	var gotIP, gotScheme string
	handler := ProxyHeaders(trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = ClientIP(r)
		gotScheme = r.URL.Scheme
	}))

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string][]string
		wantIP     string
		wantScheme string
	}{
		{
			name:       "direct client cannot spoof",
			remoteAddr: "203.0.113.9:51000",
			headers: map[string][]string{
				"X-Forwarded-For":   {"198.51.100.1"},
				"X-Real-Ip":         {"198.51.100.2"},
				"X-Forwarded-Proto": {"https"},
			},
			wantIP: "203.0.113.9",
		},
		{
			name:       "trusted proxy",
			remoteAddr: "10.1.2.3:40000",
			headers: map[string][]string{
				"X-Forwarded-For":   {"198.51.100.7"},
				"X-Forwarded-Proto": {"https"},
			},
			wantIP:     "198.51.100.7",
			wantScheme: "https",
		},
		{
			name:       "client prefix before the proxy hop is ignored",
			remoteAddr: "10.1.2.3:40000",
			headers:    map[string][]string{"X-Forwarded-For": {"1.2.3.4, 198.51.100.7, 10.0.0.5"}},
			wantIP:     "198.51.100.7",
		},
		{
			name:       "repeated header lines",
			remoteAddr: "10.1.2.3:40000",
			headers:    map[string][]string{"X-Forwarded-For": {"1.2.3.4", "198.51.100.7"}},
			wantIP:     "198.51.100.7",
		},
		{
			name:       "trusted proxy without forwarding headers",
			remoteAddr: "10.1.2.3:40000",
			wantIP:     "10.1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIP, gotScheme = "", ""
			req := httptest.NewRequest("GET", "/contact", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, vs := range tt.headers {
				for _, v := range vs {
					req.Header.Add(k, v)
				}
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantIP, gotIP)
			assert.Equal(t, tt.wantScheme, gotScheme)
		})
	}
}

func TestProxyHeadersWithoutTrustedProxies(t *testing.T) {
	var gotIP string
	handler := ProxyHeaders(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = ClientIP(r)
		assert.Empty(t, r.Header.Get("X-Forwarded-For"))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.2.3:40000"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "10.1.2.3", gotIP)
}
