package utils

import (
	"fmt"
	"strconv"
	"strings"

	"estatedesk/models"
)

// FormatIndianPrice renders a price the way the listing cards display it:
// rupee symbol, Lakh/Crore abbreviations, and a /month suffix for rentals.
func FormatIndianPrice(price float64, intent models.ListingIntent) string {
	if intent == models.IntentRent {
		if price >= 100000 {
			return fmt.Sprintf("₹%.1f Lakh/month", price/100000)
		}
		return "₹" + groupIndian(int64(price)) + "/month"
	}

	if price >= 10000000 {
		return fmt.Sprintf("₹%.1f Crore", price/10000000)
	}
	if price >= 100000 {
		return fmt.Sprintf("₹%.1f Lakh", price/100000)
	}
	return "₹" + groupIndian(int64(price))
}

// groupIndian formats n with Indian digit grouping: the last three digits
// form one group, every group before that has two digits (12,34,567).
func groupIndian(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(append(parts, tail), ",")
	}

	if neg {
		return "-" + s
	}
	return s
}
