package lookup

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"time"

	"github.com/phishguard/phishguard/internal/ports"
)

// TLSCertificateLookup checks the certificate a host presents on port 443.
//
// The handshake itself runs with verification disabled so that a site with a
// broken certificate still yields a result (Valid: false) instead of a bare
// network error; the chain is then verified manually. Only connection-level
// failures surface as errors, which the caller records as "unknown".
type TLSCertificateLookup struct {
	dialer net.Dialer
	now    func() time.Time

	// roots overrides the system pool in tests.
	roots *x509.CertPool
}

// NewTLSCertificateLookup creates a TLS certificate checker.
func NewTLSCertificateLookup() *TLSCertificateLookup {
	return &TLSCertificateLookup{now: time.Now}
}

// Check connects to hostname:443 and reports whether the presented
// certificate chain is valid for that name, plus days until the leaf expires.
func (l *TLSCertificateLookup) Check(ctx context.Context, hostname string) (ports.CertificateInfo, error) {
	if hostname == "" {
		return ports.CertificateInfo{}, fmt.Errorf("empty hostname")
	}

	conn, err := l.dialer.DialContext(ctx, "tcp", net.JoinHostPort(hostname, "443"))
	if err != nil {
		return ports.CertificateInfo{}, fmt.Errorf("tls dial failed: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         hostname,
		InsecureSkipVerify: true, // verified manually below
	})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return ports.CertificateInfo{}, fmt.Errorf("tls handshake failed: %w", err)
	}

	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return ports.CertificateInfo{}, fmt.Errorf("no peer certificates presented")
	}
	leaf := certs[0]

	info := ports.CertificateInfo{
		Valid:         l.verify(leaf, certs[1:], hostname),
		DaysRemaining: int(leaf.NotAfter.Sub(l.now()).Hours() / 24),
	}
	return info, nil
}

func (l *TLSCertificateLookup) verify(leaf *x509.Certificate, rest []*x509.Certificate, hostname string) bool {
	intermediates := x509.NewCertPool()
	for _, c := range rest {
		intermediates.AddCert(c)
	}

	_, err := leaf.Verify(x509.VerifyOptions{
		DNSName:       hostname,
		Intermediates: intermediates,
		Roots:         l.roots,
		CurrentTime:   l.now(),
	})
	return err == nil
}
