package invite

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	charset       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength  = 5
	maxAttempts   = 10
	defaultPrefix = "WS"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// SlugifyName returns the first 5 uppercase alphanumeric characters of name,
// or the fallback prefix when nothing survives the cleanup.
func SlugifyName(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(name, "")

	if len(slug) > 5 {
		slug = slug[:5]
	}

	slug = strings.ToUpper(slug)

	if slug == "" {
		return defaultPrefix
	}

	return slug
}

func randomSuffix(length int) (string, error) {
	var sb strings.Builder

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[n.Int64()])
	}

	return sb.String(), nil
}

// UniqueCode generates a "PREFIX-SUFFIX" code that is unique within the
// given model's column at the moment of the check. Up to maxAttempts random
// suffixes are tried against the table; after that a random uuid-derived
// suffix is used without a re-check, unique with overwhelming probability.
//
// The check and the caller's insert are not atomic. The unique index on the
// column is the real enforcement point; callers must treat a duplicate-key
// error on insert as a lost race and report a conflict.
func UniqueCode(tx *gorm.DB, model interface{}, column string, seed string) (string, error) {
	prefix := SlugifyName(seed)

	for i := 0; i < maxAttempts; i++ {
		suffix, err := randomSuffix(suffixLength)
		if err != nil {
			return "", err
		}

		code := prefix + "-" + suffix

		var count int64
		if err := tx.Model(model).Where(column+" = ?", code).Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			return code, nil
		}
	}

	id := uuid.New()
	hex := strings.ReplaceAll(id.String(), "-", "")

	if len(hex) < 8 {
		return "", errors.New("unexpected uuid length")
	}

	return prefix + "-" + strings.ToUpper(hex[:8]), nil
}
