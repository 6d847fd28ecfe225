package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes used by the receipt builder.
const (
	esc  = 0x1B
	gs   = 0x1D
	feed = 0x0A
)

// Alignment values for SetAlign (ESC a n).
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes for SetFontSize (GS ! n). The receipt uses the normal
// size everywhere except the business name, which prints double.
const (
	FontNormal = 0x00
	FontDouble = 0x11
)

// Document accumulates the ESC/POS byte stream for one receipt.
// Methods chain; call Bytes once the receipt is laid out and hand the
// result to a Printer.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a receipt document for the given character width:
// 32 for 58mm paper, 48 for 80mm. The printer is reinitialized at the
// start of every document so a previous job cannot leak styling.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{esc, '@'})
	return d
}

// LineFeed advances the paper one line.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(feed)
	return d
}

// FeedLines advances the paper n lines. Used before the cut so the
// printed tail clears the tear bar.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(feed)
	}
	return d
}

// SetAlign sets text alignment for subsequent lines.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{esc, 'a', byte(align)})
	return d
}

// SetBold toggles emphasized printing.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

// SetFontSize sets the character size for subsequent lines.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{gs, '!', size})
	return d
}

// Text prints one line.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(feed)
	return d
}

// TextF prints one formatted line.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a rule across the full print width.
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// spread prints left- and right-anchored text on one line, padded to the
// print width. Lines that do not fit keep a single space between the parts.
func (d *Document) spread(left, right string) *Document {
	pad := d.width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return d.Text(left + strings.Repeat(" ", pad) + right)
}

// KeyValue prints a label with a right-aligned value, e.g. the OR number
// or a totals row.
func (d *Document) KeyValue(key, value string) *Document {
	return d.spread(key, value)
}

// ItemLine prints a charged line: quantity, name, right-aligned amount.
func (d *Document) ItemLine(qty int, name, amount string) *Document {
	return d.spread(fmt.Sprintf("%dx %s", qty, name), amount)
}

// PartialCut cuts the paper, leaving the tab that keeps the receipt
// attached until the operator tears it off.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
