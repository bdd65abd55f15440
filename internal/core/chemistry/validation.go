package chemistry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"green-chemistry-helper/internal/pkg/common"
)

// MaxChemicalInputLength 反應物/產物欄位長度上限
const MaxChemicalInputLength = 500

// 表單驗證訊息
const (
	msgEmptyReactants  = "Please enter at least one reactant"
	msgTooLong         = "Input is too long (maximum %d characters)"
	msgNoLetters       = "Please enter chemical names, not just numbers or symbols"
	msgInvalidChars    = "Input contains invalid characters"
	msgSelectSolvent   = "Please select a solvent"
	msgUnknownSolvent  = "Unsupported solvent: %s"
	msgInvalidTemp     = "Please enter a valid temperature"
	productsMsgPrefix  = "Products field: "
	forbiddenChemChars = "<>{};"
)

// Validate 依序檢查表單欄位，回傳第一個錯誤
func Validate(input ReactionInput) error {
	if msg := validateChemicalInput(input.Reactants); msg != "" {
		return common.NewValidationError(msg)
	}

	if strings.TrimSpace(input.Products) != "" {
		if msg := validateChemicalInput(input.Products); msg != "" {
			return common.NewValidationError(productsMsgPrefix + msg)
		}
	}

	if input.Solvent == "" {
		return common.NewValidationError(msgSelectSolvent)
	}
	if !IsKnownSolvent(input.Solvent) {
		return common.NewValidationError(fmt.Sprintf(msgUnknownSolvent, input.Solvent))
	}

	if !isNumeric(input.Temperature) {
		return common.NewValidationError(msgInvalidTemp)
	}

	return nil
}

// ValidateReactants 只檢查反應物欄位（預測用）
func ValidateReactants(reactants string) error {
	if msg := validateChemicalInput(reactants); msg != "" {
		return common.NewValidationError(msg)
	}
	return nil
}

// validateChemicalInput 回傳空字串代表通過
func validateChemicalInput(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return msgEmptyReactants
	}
	if utf8.RuneCountInString(trimmed) > MaxChemicalInputLength {
		return fmt.Sprintf(msgTooLong, MaxChemicalInputLength)
	}

	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsControl(r) || strings.ContainsRune(forbiddenChemChars, r) {
			return msgInvalidChars
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return msgNoLetters
	}
	return ""
}

// isNumeric 與瀏覽器 Number() 的判斷一致：去除空白後可轉為數字
func isNumeric(raw string) bool {
	s := strings.TrimFunc(raw, isJSSpace)
	if s == "" {
		return false
	}

	// 0x / 0b / 0o 整數不可帶正負號
	if base := radixPrefix(s); base > 0 {
		for _, r := range s[2:] {
			if d := digitValue(r); d < 0 || d >= base {
				return false
			}
		}
		return true
	}
	if strings.ContainsAny(s, "_xXpP") {
		return false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Is(err, strconv.ErrRange)
	}
	if math.IsNaN(f) {
		return false
	}
	if math.IsInf(f, 0) {
		return strings.TrimLeft(s, "+-") == "Infinity"
	}
	return true
}

// radixPrefix 回傳 0x、0o、0b 前綴對應的進位，沒有前綴時回傳 0
func radixPrefix(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
