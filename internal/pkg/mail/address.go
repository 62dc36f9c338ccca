package mail

import (
	"net/mail"
	"strings"
)

func senderOf(msg Message, fallback string) string {
	if msg.From != "" {
		return msg.From
	}
	return fallback
}

// splitAddress separates "Name<addr>" at the last '<'. The display name is
// free text, so it is not parsed as RFC 5322.
func splitAddress(s string) (name, addr string) {
	s = strings.TrimSpace(s)

	i := strings.LastIndex(s, "<")
	if i < 0 || !strings.HasSuffix(s, ">") {
		if parsed, err := mail.ParseAddress(s); err == nil {
			return parsed.Name, parsed.Address
		}
		return "", s
	}

	name = strings.TrimSpace(s[:i])
	if len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		name = name[1 : len(name)-1]
	}

	return name, strings.TrimSpace(s[i+1 : len(s)-1])
}

// addressOf extracts the bare address used for the SMTP envelope and SES
// destinations.
func addressOf(s string) string {
	_, addr := splitAddress(s)
	return addr
}

func addressesOf(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, addressOf(s))
	}
	return out
}

// formatAddress renders s for a header. Names are quoted or Q-encoded, so
// control characters never reach the raw message.
func formatAddress(s string) string {
	name, addr := splitAddress(s)

	out := (&mail.Address{Name: name, Address: addr}).String()
	if name == "" {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<"), ">")
	}

	return out
}

func formatAddresses(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, formatAddress(s))
	}
	return out
}
