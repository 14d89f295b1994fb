package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// dnsTimeout bounds the registration-path lookups so a slow resolver
// cannot stall signup.
const dnsTimeout = 3 * time.Second

type dnsResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

var resolver dnsResolver = net.DefaultResolver

// IsEmailDomainValid reports whether the address's domain accepts mail:
// it must carry an MX record, or at least resolve to a host. Address
// syntax beyond the domain split is the binding validator's job.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.TrimSuffix(email[at+1:], ".")
	if domain == "" || !strings.Contains(domain, ".") || strings.ContainsAny(domain, " \t") {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()

	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := resolver.LookupIPAddr(ctx, domain)
	return err == nil && len(ips) > 0
}
