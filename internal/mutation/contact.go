package mutation

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"strings"

	"pganonymize/internal/core"
)

// Email generates "first.lastNNNN@domain" in the active locale.
func Email(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		first := strings.ToLower(c.Fake.FirstName(c.Locale, c.Rng))
		last := strings.ToLower(c.Fake.LastName(c.Locale, c.Rng))
		num := 1 + c.Rng.Intn(9999)
		domain := c.Fake.EmailDomain(c.Locale, c.Rng)
		return fmt.Sprintf("%s.%s%d@%s", first, last, num, domain), nil
	})
}

// PhoneNumber fills a mask where 'X' and '#' become random digits and
// every other character is copied verbatim.
func PhoneNumber(c *Context) (string, error) {
	mask, err := requireString(c, "mask", "phone_number")
	if err != nil {
		return "", err
	}
	return withUnique(c, func() (string, error) {
		return fillDigitMask(c, mask), nil
	})
}

func fillDigitMask(c *Context, mask string) string {
	var b strings.Builder
	b.Grow(len(mask))
	for _, ch := range mask {
		if ch == 'X' || ch == '#' {
			b.WriteByte(byte('0' + c.Rng.Intn(10)))
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Address generates a locale-appropriate postal address string.
func Address(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		return c.Fake.Address(c.Locale, c.Rng), nil
	})
}

// DeterministicPhoneNumber replaces the last `obfuscated_numbers_count`
// (default 4) digits of the input with an HMAC-SHA256-derived digit
// stream keyed by SECRET_KEY (and optionally salted with
// SECRET_KEY_NONCE). Non-digit characters keep their position. Requires
// at least that many digits in the input and a non-empty SECRET_KEY.
func DeterministicPhoneNumber(c *Context) (string, error) {
	count := int(c.Int64("obfuscated_numbers_count", 4))

	secretKey := c.Secrets["SECRET_KEY"]
	if secretKey == "" {
		return "", core.Wrap(core.KindMutationError, "SECRET_KEY environment variable not set", nil)
	}
	nonce := c.Secrets["SECRET_KEY_NONCE"]

	digitCount := 0
	for _, r := range c.CurrentValue {
		if r >= '0' && r <= '9' {
			digitCount++
		}
	}
	if digitCount < count {
		return "", core.Wrap(core.KindMutationError, "not enough digits to obfuscate", nil)
	}

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(c.CurrentValue + nonce))
	sum := mac.Sum(nil)

	newDigits := make([]byte, 0, count)
	for _, b := range sum {
		if len(newDigits) >= count {
			break
		}
		newDigits = append(newDigits, byte('0'+b%10))
	}

	result := []rune(c.CurrentValue)
	replaced := 0
	for i := len(result) - 1; i >= 0 && replaced < count; i-- {
		if result[i] >= '0' && result[i] <= '9' {
			digitIdx := count - 1 - replaced
			result[i] = rune(newDigits[digitIdx])
			replaced++
		}
	}
	return string(result), nil
}
