package service

import (
	"github.com/Fouxth/BaanTK-sub000/internal/domain/apperror"
)

// ---------------------------------------------------------------------------
// Thai national ID checksum validation
// ---------------------------------------------------------------------------

// idCardLength is the fixed length of a Thai national identity number.
const idCardLength = 13

// ValidateIDCard checks a Thai national ID syntactically and against its
// checksum. The weighted sum of the first 12 digits (weights 13 down to 2)
// must satisfy checkDigit == (11 - sum mod 11) mod 10.
//
// A checksum failure is terminal; it is never worth retrying.
func ValidateIDCard(id string) error {
	if len(id) != idCardLength {
		return apperror.NewValidationError("id_card", "must be exactly 13 digits")
	}

	sum := 0
	for i := 0; i < idCardLength-1; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return apperror.NewValidationError("id_card", "must contain only digits")
		}
		sum += int(c-'0') * (idCardLength - i)
	}

	last := id[idCardLength-1]
	if last < '0' || last > '9' {
		return apperror.NewValidationError("id_card", "must contain only digits")
	}

	check := (11 - sum%11) % 10
	if int(last-'0') != check {
		return apperror.NewValidationError("id_card", "checksum mismatch")
	}
	return nil
}
