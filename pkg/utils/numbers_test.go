package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReceiptNumberFormat(t *testing.T) {
	at := time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)

	or := GenerateReceiptNumber("OR", at)
	assert.Regexp(t, regexp.MustCompile(`^OR-20250831-\d{5}$`), or)

	txn := GenerateReceiptNumber("TXN", at)
	assert.Regexp(t, regexp.MustCompile(`^TXN-20250831-\d{5}$`), txn)
}
