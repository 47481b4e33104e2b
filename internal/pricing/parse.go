package pricing

import (
    "errors"
    "fmt"
    "regexp"
    "strings"
    "unicode"

    "github.com/shopspring/decimal"
)

// ErrInvalidPrice is matched by every *InvalidPriceError.
var ErrInvalidPrice = errors.New("invalid price")

// InvalidPriceError reports a monetary input that could not be parsed.
type InvalidPriceError struct {
    Input  string
    Reason string
}

func (e *InvalidPriceError) Error() string {
    return fmt.Sprintf("invalid price %q: %s", e.Input, e.Reason)
}

func (e *InvalidPriceError) Is(target error) bool { return target == ErrInvalidPrice }

var plainNumber = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParsePrice parses an admin-entered amount such as "250.000",
// "1.234.567,89" or "250,5".  Grouping separators are stripped and the
// remaining separator becomes the decimal point.  A lone separator
// followed by exactly three digits is treated as grouping.  Grouped
// integer parts must read 1 to 3 digits, then blocks of exactly 3.
func ParsePrice(raw string) (decimal.Decimal, error) {
    s := strings.Map(func(r rune) rune {
        if unicode.IsSpace(r) {
            return -1
        }
        return r
    }, raw)
    if s == "" {
        return decimal.Zero, &InvalidPriceError{Input: raw, Reason: "empty"}
    }
    if strings.HasPrefix(s, "-") {
        return decimal.Zero, &InvalidPriceError{Input: raw, Reason: "negative"}
    }
    s = strings.TrimPrefix(s, "+")

    lastDot := strings.LastIndex(s, ".")
    lastComma := strings.LastIndex(s, ",")
    switch {
    case lastDot >= 0 && lastComma >= 0:
        dec, grp := ",", "."
        if lastDot > lastComma {
            dec, grp = ".", ","
        }
        if strings.Count(s, dec) > 1 {
            return decimal.Zero, &InvalidPriceError{Input: raw, Reason: "ambiguous separators"}
        }
        if !wellGrouped(s[:strings.LastIndex(s, dec)], grp) {
            return decimal.Zero, &InvalidPriceError{Input: raw, Reason: "malformed grouping"}
        }
        s = strings.ReplaceAll(s, grp, "")
        s = strings.Replace(s, dec, ".", 1)
    case lastDot >= 0 || lastComma >= 0:
        sep, idx := ".", lastDot
        if lastComma >= 0 {
            sep, idx = ",", lastComma
        }
        if strings.Count(s, sep) > 1 || len(s)-idx-1 == 3 {
            if !wellGrouped(s, sep) {
                return decimal.Zero, &InvalidPriceError{Input: raw, Reason: "malformed grouping"}
            }
            s = strings.ReplaceAll(s, sep, "")
        } else {
            s = strings.Replace(s, sep, ".", 1)
        }
    }

    if !plainNumber.MatchString(s) {
        return decimal.Zero, &InvalidPriceError{Input: raw, Reason: "not a number"}
    }
    d, err := decimal.NewFromString(s)
    if err != nil {
        return decimal.Zero, &InvalidPriceError{Input: raw, Reason: err.Error()}
    }
    return d, nil
}

// wellGrouped reports whether s splits on sep into a leading group of
// 1 to 3 characters followed by groups of exactly 3.
func wellGrouped(s, sep string) bool {
    groups := strings.Split(s, sep)
    if n := len(groups[0]); n < 1 || n > 3 {
        return false
    }
    for _, g := range groups[1:] {
        if len(g) != 3 {
            return false
        }
    }
    return true
}
