package utils

import (
	"fmt"
	"time"

	"scl/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// IssuedCertificate is the result contract of the external certificate
// collaborator: a hosted URL plus a stable certificate id. Rendering and
// storage are the collaborator's business.
type IssuedCertificate struct {
	URL string `json:"certificateUrl"`
	ID  string `json:"certificateId"`
}

type certRenderRequest struct {
	CertificateID string `json:"certificateId"`
	UserName      string `json:"userName"`
	CourseTitle   string `json:"courseTitle"`
}

type certRenderResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

var certClient = resty.New().SetTimeout(30 * time.Second)

// GenerateCertificateID produces a unique certificate identifier
func GenerateCertificateID() string {
	return "CERT-" + uuid.NewString()
}

// IssueCertificate asks the certificate service to render and host a
// certificate PDF. When no service is configured (local development) it
// falls back to a deterministic local path so completion flows still work.
func IssueCertificate(userName, courseTitle string) (IssuedCertificate, error) {
	certID := GenerateCertificateID()
	cfg := config.AppConfig

	if cfg.CertApiURL == "" {
		return IssuedCertificate{
			URL: fmt.Sprintf("/certificates/%s.pdf", certID),
			ID:  certID,
		}, nil
	}

	var result certRenderResponse
	resp, err := certClient.R().
		SetHeader("Authorization", "Bearer "+cfg.CertApiKey).
		SetBody(certRenderRequest{
			CertificateID: certID,
			UserName:      userName,
			CourseTitle:   courseTitle,
		}).
		SetResult(&result).
		Post(cfg.CertApiURL + "/render")
	if err != nil {
		return IssuedCertificate{}, fmt.Errorf("certificate service unreachable: %w", err)
	}
	if resp.IsError() {
		return IssuedCertificate{}, fmt.Errorf("certificate service error: %s", resp.Status())
	}
	if result.URL == "" {
		return IssuedCertificate{}, fmt.Errorf("certificate service returned no url")
	}

	return IssuedCertificate{URL: result.URL, ID: certID}, nil
}
