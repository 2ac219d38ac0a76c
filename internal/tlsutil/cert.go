package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/paymesh/apidocs/internal/config"
)

const (
	certFileName = "server.crt"
	keyFileName  = "server.key"

	certValidity = 365 * 24 * time.Hour
)

// CertificateManager resolves the serving certificate for the
// documentation server. Explicitly configured files win, then a pair
// generated on an earlier start, then a fresh self-signed pair when
// auto-generation is enabled.
type CertificateManager struct {
	certFile     string
	keyFile      string
	storePath    string
	autoGenerate bool
	host         string
}

// NewCertificateManager creates a certificate manager for the given TLS
// configuration. host is the configured serving host and is added to
// generated certificates.
func NewCertificateManager(cfg config.TLSConfig, host string) *CertificateManager {
	return &CertificateManager{
		certFile:     cfg.CertFile,
		keyFile:      cfg.KeyFile,
		storePath:    cfg.StorePath,
		autoGenerate: cfg.AutoGenerate,
		host:         host,
	}
}

// GetCertificate returns the TLS certificate to serve with
func (cm *CertificateManager) GetCertificate() (*tls.Certificate, error) {
	// Explicitly configured files take precedence and must load
	if cm.certFile != "" && cm.keyFile != "" {
		cert, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate from %s and %s: %w", cm.certFile, cm.keyFile, err)
		}
		return &cert, nil
	}

	cert, err := tls.LoadX509KeyPair(cm.CertificatePaths())
	if err == nil {
		return &cert, nil
	}

	if !cm.autoGenerate {
		return nil, fmt.Errorf("no TLS certificate found and auto-generation is disabled")
	}

	return cm.generateAndStore()
}

// generateAndStore creates a self-signed certificate and saves it to the store path
func (cm *CertificateManager) generateAndStore() (*tls.Certificate, error) {
	if err := os.MkdirAll(cm.storePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create certificate store directory: %w", err)
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	notBefore := time.Now()
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Paymesh"},
			CommonName:   "Paymesh API Docs",
		},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(certValidity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
	}

	if ip := net.ParseIP(cm.host); ip != nil {
		if !ip.IsUnspecified() {
			template.IPAddresses = append(template.IPAddresses, ip)
		}
	} else if cm.host != "" && cm.host != "localhost" {
		template.DNSNames = append(template.DNSNames, cm.host)
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certDER,
	})

	keyDER, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: keyDER,
	})

	certPath, keyPath := cm.CertificatePaths()
	if err := os.WriteFile(certPath, certPEM, 0644); err != nil {
		return nil, fmt.Errorf("failed to save certificate: %w", err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0600); err != nil {
		return nil, fmt.Errorf("failed to save private key: %w", err)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated certificate: %w", err)
	}

	return &cert, nil
}

// CertificatePaths returns where the serving certificate and key live
func (cm *CertificateManager) CertificatePaths() (certPath, keyPath string) {
	if cm.certFile != "" && cm.keyFile != "" {
		return cm.certFile, cm.keyFile
	}
	return filepath.Join(cm.storePath, certFileName), filepath.Join(cm.storePath, keyFileName)
}
