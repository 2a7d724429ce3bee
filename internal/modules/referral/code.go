package referral

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"weddingstudio/internal/domain"
)

// BuildCode derives the human-legible partner code: wedding date as YYMMDD
// followed by the cleaned customer name. Codes are shareable on purpose and
// collision-prone by construction; uniqueness is resolved at assignment.
func BuildCode(weddingDate time.Time, name string) string {
	return weddingDate.Format("060102") + cleanName(name)
}

// cleanName strips whitespace and punctuation, keeping letters and digits
// (Hangul included).
func cleanName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// uniqueCode probes existing partner codes and appends " (n)" until the code
// is free. Runs inside the caller's transaction so the probe and the insert
// that follows see the same state.
func uniqueCode(tx *gorm.DB, base string) (string, error) {
	code := base
	for n := 2; ; n++ {
		var cnt int64
		if err := tx.Model(&domain.Booking{}).Where("partner_code = ?", code).Count(&cnt).Error; err != nil {
			return "", err
		}
		if cnt == 0 {
			return code, nil
		}
		code = fmt.Sprintf("%s (%d)", base, n)
	}
}
