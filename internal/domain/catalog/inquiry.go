package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultContactNumber is the storefront WhatsApp number in E.164 digits
const DefaultContactNumber = "5561982131123"

// InquiryMessage is the prefilled message a customer sends about an item
func InquiryMessage(item Item) string {
	return fmt.Sprintf("Olá! Tenho interesse no produto: %s - %s", item.Name, item.FormattedPrice())
}

// InquiryLink builds the wa.me deep link for an item. Non-digit characters
// in number are ignored.
func InquiryLink(number string, item Item) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		digits = DefaultContactNumber
	}
	text := strings.ReplaceAll(url.QueryEscape(InquiryMessage(item)), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
