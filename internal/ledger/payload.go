package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PayloadSeparator joins the fields of a block payload. Fields are not
// escaped, so borrower names must not contain it.
const PayloadSeparator = ":"

const timestampLayout = "2006-01-02 15:04:05"

// Entry is a loan event in structured form.
type Entry struct {
	Borrower  string
	Amount    decimal.Decimal
	Timestamp time.Time
}

// Data returns the canonical payload for the entry.
func (e Entry) Data() string {
	return Payload(e.Borrower, e.Amount, e.Timestamp)
}

// Payload formats "{borrower}:{amount}:{timestamp}".
func Payload(borrower string, amount decimal.Decimal, ts time.Time) string {
	return strings.Join([]string{borrower, FormatAmount(amount), FormatTimestamp(ts)}, PayloadSeparator)
}

// FormatAmount renders integral amounts with one decimal place ("100.0") and
// everything else in its shortest exact form ("250.5"), the way amounts were
// rendered when the legacy records were hashed.
func FormatAmount(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return amount.StringFixed(1)
	}
	return amount.String()
}

// FormatTimestamp renders ts as "2006-01-02 15:04:05", followed by six digits
// of microseconds when they are non-zero. Nanoseconds below a microsecond are
// dropped.
func FormatTimestamp(ts time.Time) string {
	s := ts.Format(timestampLayout)
	if us := ts.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// timestampFromData returns everything after the final separator. A payload
// whose timestamp itself contains the separator only yields its last fragment.
func timestampFromData(data string) string {
	if i := strings.LastIndex(data, PayloadSeparator); i >= 0 {
		return data[i+len(PayloadSeparator):]
	}
	return data
}
