package validators

import "strings"

// Persian and Arabic-Indic digits seen in user input.
var digitMap = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

// NormalizePhone strips separators, converts Persian digits and
// rewrites the +98 prefix to the local 0 form.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if d, ok := digitMap[r]; ok {
			r = d
		}
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	phone := b.String()
	if strings.HasPrefix(phone, "+98") {
		phone = "0" + phone[3:]
	} else if strings.HasPrefix(phone, "98") && len(phone) == 12 {
		phone = "0" + phone[2:]
	}
	return phone
}

// IsMobileValid accepts local mobile numbers (09xxxxxxxxx).
func IsMobileValid(phone string) bool {
	phone = NormalizePhone(phone)
	if len(phone) != 11 || !strings.HasPrefix(phone, "09") {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
