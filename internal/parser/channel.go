package parser

import "strings"

// channelRule maps label substrings to a canonical channel name, evaluated
// in order: the first rule with any matching keyword wins.
type channelRule struct {
	keywords  []string
	canonical string
}

// Direct, Google and the social platforms are reported as one bucket; the
// OTAs keep their brand names.
var channelRules = []channelRule{
	{[]string{"direct", "პირდაპირ", "google", "facebook", "instagram", "social"}, "Social Media"},
	{[]string{"booking"}, "Booking.com"},
	{[]string{"agoda"}, "Agoda"},
	{[]string{"expedia"}, "Expedia"},
	{[]string{"airbnb"}, "Airbnb"},
	{[]string{"ostrovok"}, "Ostrovok"},
}

// NormalizeChannel maps a free-text channel label onto the canonical channel
// set. Empty labels land in fallback; labels matching no rule pass through
// trimmed but otherwise unchanged. Idempotent for any input.
func NormalizeChannel(label, fallback string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return fallback
	}

	lower := strings.ToLower(trimmed)
	for _, rule := range channelRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.canonical
			}
		}
	}

	return trimmed
}
