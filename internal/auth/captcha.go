package auth

import (
	"crypto/rand"
	"math/big"
)

// captchaAlphabet avoids lookalike characters (0/O, 1/l/I).
const captchaAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// captchaLength is the number of characters the user must retype.
const captchaLength = 6

// NewCaptcha returns a random character sequence the user must retype
// before credentials are sent anywhere.
func NewCaptcha() string {
	buf := make([]byte, captchaLength)
	max := big.NewInt(int64(len(captchaAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; a fixed fallback keeps login usable.
			buf[i] = captchaAlphabet[i%len(captchaAlphabet)]
			continue
		}
		buf[i] = captchaAlphabet[n.Int64()]
	}
	return string(buf)
}
