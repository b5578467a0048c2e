package services

import (
	"fmt"
	"math"
	"strings"
)

// NumberToWords converts a float64 amount to Indonesian words with currency
// Example: 1500000 -> "SATU JUTA LIMA RATUS RIBU RUPIAH"
func NumberToWords(amount float64) string {
	integerPart := int64(math.Round(amount))
	if integerPart == 0 {
		return "NOL RUPIAH"
	}

	words := convertNumberToWords(integerPart)

	return strings.ToUpper(fmt.Sprintf("%s RUPIAH", words))
}

func convertNumberToWords(n int64) string {
	if n == 0 {
		return "nol"
	}

	if n < 0 {
		return "minus " + convertNumberToWords(-n)
	}

	if n < 10 {
		return units[n]
	}

	if n == 10 {
		return "sepuluh"
	}

	if n == 11 {
		return "sebelas"
	}

	if n < 20 {
		return units[n-10] + " belas"
	}

	if n < 100 {
		u := n % 10
		t := n / 10
		if u == 0 {
			return units[t] + " puluh"
		}
		return fmt.Sprintf("%s puluh %s", units[t], units[u])
	}

	if n < 200 {
		remainder := n % 100
		if remainder == 0 {
			return "seratus"
		}
		return "seratus " + convertNumberToWords(remainder)
	}

	if n < 1000 {
		hundredsPart := n / 100
		remainder := n % 100
		if remainder == 0 {
			return units[hundredsPart] + " ratus"
		}
		return fmt.Sprintf("%s ratus %s", units[hundredsPart], convertNumberToWords(remainder))
	}

	if n < 2000 {
		remainder := n % 1000
		if remainder == 0 {
			return "seribu"
		}
		return "seribu " + convertNumberToWords(remainder)
	}

	if n < 1000000 {
		thousands := n / 1000
		remainder := n % 1000
		thousandsText := convertNumberToWords(thousands) + " ribu"
		if remainder == 0 {
			return thousandsText
		}
		return fmt.Sprintf("%s %s", thousandsText, convertNumberToWords(remainder))
	}

	if n < 1000000000 {
		millions := n / 1000000
		remainder := n % 1000000
		millionsText := convertNumberToWords(millions) + " juta"
		if remainder == 0 {
			return millionsText
		}
		return fmt.Sprintf("%s %s", millionsText, convertNumberToWords(remainder))
	}

	if n < 1000000000000 {
		billions := n / 1000000000
		remainder := n % 1000000000
		billionsText := convertNumberToWords(billions) + " miliar"
		if remainder == 0 {
			return billionsText
		}
		return fmt.Sprintf("%s %s", billionsText, convertNumberToWords(remainder))
	}

	if n < 1000000000000000 {
		trillions := n / 1000000000000
		remainder := n % 1000000000000
		trillionsText := convertNumberToWords(trillions) + " triliun"
		if remainder == 0 {
			return trillionsText
		}
		return fmt.Sprintf("%s %s", trillionsText, convertNumberToWords(remainder))
	}

	return "angka terlalu besar"
}

var units = []string{
	"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan",
}
