package chemistry

import (
	"math"
	"strings"
)

// defaultPredictionTemperature 預測時無法解析溫度的預設值
const defaultPredictionTemperature = 25

// ParseTemperature 以 parseInt 的方式解析溫度：
// 忽略前導空白、允許正負號與 0x 前綴，只取開頭的數字部分。
// 沒有任何數字時回傳 ok=false。
func ParseTemperature(raw string) (value int, ok bool) {
	s := strings.TrimLeftFunc(raw, isJSSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	var n int64
	digits := 0
	overflow := false
	for _, r := range s {
		d := digitValue(r)
		if d < 0 || d >= base {
			break
		}
		digits++
		if overflow {
			continue
		}
		if n > (math.MaxInt64-int64(d))/int64(base) {
			overflow = true
			continue
		}
		n = n*int64(base) + int64(d)
	}

	if digits == 0 {
		return 0, false
	}
	if overflow {
		n = math.MaxInt64
	}
	if negative {
		n = -n
	}
	if n > math.MaxInt || n < math.MinInt {
		if negative {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return int(n), true
}

// predictionTemperature 預測用溫度，解析失敗或為 0 時使用 25
func predictionTemperature(raw string) int {
	t, ok := ParseTemperature(raw)
	if !ok || t == 0 {
		return defaultPredictionTemperature
	}
	return t
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// isJSSpace 瀏覽器 trim 認定的空白字元（含 BOM，不含 U+0085）
func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
