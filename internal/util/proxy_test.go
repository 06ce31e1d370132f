package util

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://plain:8080", "http://secure:8443")

	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/bills", nil)
	require.NoError(t, err)
	u, err := proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "secure:8443", u.Host)

	req, err = http.NewRequest(http.MethodGet, "http://api.example.com/bills", nil)
	require.NoError(t, err)
	u, err = proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "plain:8080", u.Host)
}

func TestNewTransport_UsesProxy(t *testing.T) {
	tr := NewTransport("http://plain:8080", "")
	req, err := http.NewRequest(http.MethodGet, "https://api.example.com", nil)
	require.NoError(t, err)

	u, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "plain:8080", u.Host)
}
