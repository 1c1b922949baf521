package proxy

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinProxySwitcher(t *testing.T) {
	p, err := RoundRobinProxySwitcher("http://127.0.0.1:8888", "socks5://127.0.0.1:1080")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	var got []string
	for i := 0; i < 3; i++ {
		u, err := p(req)
		require.NoError(t, err)
		got = append(got, u.Host)
	}
	assert.Equal(t, []string{"127.0.0.1:8888", "127.0.0.1:1080", "127.0.0.1:8888"}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		urls    []string
		wantErr bool
	}{
		{name: "empty", wantErr: true},
		{name: "no scheme", urls: []string{"127.0.0.1"}, wantErr: true},
		{name: "ftp", urls: []string{"ftp://127.0.0.1:21"}, wantErr: true},
		{name: "no host", urls: []string{"http://"}, wantErr: true},
		{name: "ok", urls: []string{"https://proxy.local:443"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.urls...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, len(tt.urls))
		})
	}
	_, err := Parse()
	assert.ErrorIs(t, err, ErrNoProxy)
}

func TestRoundRobin_Empty(t *testing.T) {
	_, err := RoundRobin([]*url.URL{})(nil)
	assert.ErrorIs(t, err, ErrNoProxy)
}
