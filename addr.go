package mailcore

import "strings"

// Recipient is a delivery address split into its routable base address and
// an optional subaddress extension.
type Recipient struct {
	// Address is the base address with any extension removed.
	Address string

	// Extension is the subaddress portion after the first '+' in the local
	// part, empty if none.
	Extension string
}

// ParseRecipient splits a recipient address into base address and subaddress
// extension, so user+work@example.com routes to the user@example.com mailbox
// with extension "work". Addresses without an extension are returned as-is.
func ParseRecipient(addr string) Recipient {
	local, domain := addr, ""
	if idx := strings.LastIndex(addr, "@"); idx >= 0 {
		local, domain = addr[:idx], addr[idx:]
	}

	plus := strings.Index(local, "+")
	if plus < 0 {
		return Recipient{Address: addr}
	}
	return Recipient{
		Address:   local[:plus] + domain,
		Extension: local[plus+1:],
	}
}

// NormalizeAddress canonicalizes an address for registry and routing lookups.
// Addresses are case-insensitive; the lowercase form is the identity.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
