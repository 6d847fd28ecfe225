package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateReceiptNumber builds an operator-facing identifier of the form
// <PREFIX>-<YYYYMMDD>-<5 random digits>, e.g. "OR-20250831-04217".
// Collisions across sessions are not checked; acceptable for a
// single-register, low-volume store.
func GenerateReceiptNumber(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, t.Format("20060102"), rand.Intn(100000))
}
