package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CardType string

const (
	Visa       CardType = "VISA"
	Mastercard CardType = "MASTERCARD"
)

// CreditCard is linked to an account but keeps its own available-credit line;
// charging a card never touches the account balance.
type CreditCard struct {
	ID               int64
	CardNumber       string // formatted ####-####-####-####
	CardHolderName   string
	ExpiryDate       time.Time
	CardType         CardType
	AccountID        int64
	Active           bool
	CreditLimit      decimal.Decimal
	AvailableBalance decimal.Decimal
}

// Charge consumes available credit.
func (c *CreditCard) Charge(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if !c.Active {
		return ErrCardNotActive
	}
	if c.AvailableBalance.LessThan(amount) {
		return ErrInsufficientCredit
	}
	c.AvailableBalance = c.AvailableBalance.Sub(amount)
	return nil
}

// GenerateCardNumber produces a Luhn-valid 16-digit number formatted in
// groups of four. Visa numbers lead with 4, Mastercard with 51-55.
func GenerateCardNumber(cardType CardType) string {
	digits := make([]int, 16)
	switch cardType {
	case Mastercard:
		digits[0] = 5
		digits[1] = 1 + randomInt(5)
	default:
		digits[0] = 4
		digits[1] = randomInt(10)
	}
	for i := 2; i < 15; i++ {
		digits[i] = randomInt(10)
	}
	digits[15] = luhnCheckDigit(digits[:15])

	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && i%4 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(byte('0' + d))
	}
	return sb.String()
}

// ValidateCardNumber strips separators and runs the Mod 10 check.
func ValidateCardNumber(number string) bool {
	clean := strings.ReplaceAll(number, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if len(clean) < 13 || len(clean) > 19 {
		return false
	}
	sum := 0
	alternate := false
	for i := len(clean) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(string(clean[i]))
		if err != nil {
			return false
		}
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}

// luhnCheckDigit computes the digit that makes the sequence pass Mod 10.
func luhnCheckDigit(digits []int) int {
	sum := 0
	alternate := true
	for i := len(digits) - 1; i >= 0; i-- {
		n := digits[i]
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return (10 - sum%10) % 10
}
