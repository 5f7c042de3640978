package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// HashtagPattern определяет допустимый формат хэштега Mastodon:
// буквы любого алфавита, цифры и нижнее подчеркивание
var HashtagPattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_]+$`)

// NormalizeHashtag убирает ведущий # и пробелы
func NormalizeHashtag(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "#")
}

// ValidateHashtag проверяет, что хэштег (с # или без) можно запросить в ленте тега
func ValidateHashtag(tag string) error {
	tag = NormalizeHashtag(tag)
	if tag == "" {
		return fmt.Errorf("hashtag cannot be empty")
	}

	if !HashtagPattern.MatchString(tag) {
		return fmt.Errorf("hashtag %q can only contain letters, numbers, and underscores (_)", tag)
	}

	return nil
}
