package formatting

import "strconv"

// FormatCoins форматирует сумму в монетах с разделителями тысяч: "12,500 coins"
func FormatCoins(amount int64) string {
	return FormatNumber(amount) + " coins"
}

// FormatNumber вставляет запятые между группами разрядов
func FormatNumber(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	pre := len(s) % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return sign + string(out)
}
