package order

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength = 6
	// byteLimit is the largest multiple of 36 below 256. Bytes at or above it
	// are discarded so every digit is equally likely.
	byteLimit = 256 - 256%len(base36)
)

// NewOrderID returns a public order id of the form ORD-<ms base36>-<6 random
// base36 chars>, upper case.
func NewOrderID(now time.Time) string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)) + "-" + randomSuffix(func() []byte {
		u := uuid.New()
		return u[:]
	})
}

// randomSuffix draws base36 digits from next by rejection sampling.
func randomSuffix(next func() []byte) string {
	out := make([]byte, 0, suffixLength)
	for len(out) < suffixLength {
		for _, b := range next() {
			if int(b) >= byteLimit {
				continue
			}
			out = append(out, base36[int(b)%len(base36)])
			if len(out) == suffixLength {
				break
			}
		}
	}
	return strings.ToUpper(string(out))
}
