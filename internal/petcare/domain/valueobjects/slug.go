package valueobjects

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"petcare/internal/petcare/domain/domainerr"
)

// MaxSlugLength - максимальная длина slug.
const MaxSlugLength = 64

var (
	ErrEmptySlug   = domainerr.InvalidArgument("slug is empty after normalization")
	ErrSlugTooLong = domainerr.InvalidArgument("slug exceeds %d characters", MaxSlugLength)
	ErrInvalidSlug = domainerr.InvalidArgument("slug has invalid format")
)

var (
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	separatorRun     = regexp.MustCompile(`[\s_]+`)
	invalidSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun          = regexp.MustCompile(`-{2,}`)
)

// Slug - URL-безопасный идентификатор, полученный из произвольного текста.
type Slug struct {
	value string
}

// NewSlug нормализует текст и проверяет результат.
func NewSlug(text string) (Slug, error) {
	s := normalizeSlug(text)
	switch {
	case s == "":
		return Slug{}, ErrEmptySlug
	case len(s) > MaxSlugLength:
		return Slug{}, ErrSlugTooLong
	case !slugPattern.MatchString(s):
		return Slug{}, ErrInvalidSlug
	}
	return Slug{value: s}, nil
}

// WithSuffix возвращает slug вида "<base>-<n>", укорачивая основу при необходимости.
func (s Slug) WithSuffix(n int) (Slug, error) {
	if n < 2 {
		return Slug{}, domainerr.InvalidArgument("slug suffix must be at least 2, got %d", n)
	}
	suffix := "-" + strconv.Itoa(n)
	base := s.value
	if len(base)+len(suffix) > MaxSlugLength {
		base = strings.TrimRight(base[:MaxSlugLength-len(suffix)], "-")
	}
	return NewSlug(base + suffix)
}

func (s Slug) String() string { return s.value }

func (s Slug) EqualityComponents() []any { return []any{s.value} }

func normalizeSlug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = transliterate(s)
	s = separatorRun.ReplaceAllString(s, "-")
	s = invalidSlugChars.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Украинская транслитерация по постановлению КМУ 2010 года.
var cyrillicLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d", 'е': "e", 'є': "ie",
	'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "i", 'й': "i", 'к': "k", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch", 'ь': "", 'ю': "iu",
	'я': "ia", 'ё': "io", 'ы': "y", 'э': "e", 'ъ': "",
	'\'': "", '’': "", 'ʼ': "",
}

// Формы в начале слова.
var wordStartLatin = map[rune]string{
	'є': "ye", 'ї': "yi", 'й': "y", 'ю': "yu", 'я': "ya",
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prev := rune(0)
	for _, r := range s {
		switch {
		case r == 'г' && prev == 'з':
			b.WriteString("gh")
		case !isWordRune(prev) && wordStartLatin[r] != "":
			b.WriteString(wordStartLatin[r])
		default:
			if latin, ok := cyrillicLatin[r]; ok {
				b.WriteString(latin)
			} else {
				b.WriteRune(r)
			}
		}
		prev = r
	}
	return stripDiacritics(b.String())
}

func isWordRune(r rune) bool {
	return r != 0 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’' || r == 'ʼ')
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
