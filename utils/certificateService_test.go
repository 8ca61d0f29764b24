package utils

import (
	"strings"
	"testing"

	"scl/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificateID(t *testing.T) {
	first := GenerateCertificateID()
	second := GenerateCertificateID()

	assert.True(t, strings.HasPrefix(first, "CERT-"))
	assert.True(t, strings.HasPrefix(second, "CERT-"))
	assert.NotEqual(t, first, second)
}

func TestIssueCertificateLocalFallback(t *testing.T) {
	config.AppConfig = &config.Config{}

	cert, err := IssueCertificate("Jordan Miles", "Go Fundamentals")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cert.URL, "/certificates/CERT-"))
	assert.True(t, strings.HasSuffix(cert.URL, ".pdf"))
	assert.True(t, strings.HasPrefix(cert.ID, "CERT-"))
	assert.Contains(t, cert.URL, cert.ID)
}
