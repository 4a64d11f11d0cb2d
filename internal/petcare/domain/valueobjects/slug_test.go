package valueobjects_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/domain/domainerr"
	vo "petcare/internal/petcare/domain/valueobjects"
)

func TestNewSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Барсік", "barsik"},
		{"Київ", "kyiv"},
		{"Щастя", "shchastia"},
		{"Тестовий слаг", "testovyi-slah"},
		{"Привіт, світе!", "pryvit-svite"},
		{"    Пробіли   і_підкреслення ", "probily-i-pidkreslennia"},
		{"123 числа", "123-chysla"},
		{"slug-with-dashes", "slug-with-dashes"},
		{"Ялта Єнакієве Їжак Юрій", "yalta-yenakiieve-yizhak-yurii"},
		{"Згорани", "zghorany"},
		{"Знам'янка", "znamianka"},
		{"Café Crème", "cafe-creme"},
		{"a---b___c", "a-b-c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			slug, err := vo.NewSlug(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, slug.String())
		})
	}
}

func TestNewSlugInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"только знаки", "!!!", vo.ErrEmptySlug},
		{"спецсимволы", "!!!@@@###", vo.ErrEmptySlug},
		{"только дефисы", "---", vo.ErrEmptySlug},
		{"пустая строка", "   ", vo.ErrEmptySlug},
		{"слишком длинный", strings.Repeat("a", vo.MaxSlugLength+1), vo.ErrSlugTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vo.NewSlug(tt.input)
			require.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
		})
	}

	t.Run("ровно 64 символа допустимо", func(t *testing.T) {
		slug, err := vo.NewSlug(strings.Repeat("a", vo.MaxSlugLength))
		require.NoError(t, err)
		assert.Len(t, slug.String(), vo.MaxSlugLength)
	})
}

func TestSlugIdempotence(t *testing.T) {
	inputs := []string{"Барсік", "Тестовий слаг", "    Пробіли   і_підкреслення ", "Привіт, світе!"}

	for _, input := range inputs {
		first, err := vo.NewSlug(input)
		require.NoError(t, err)

		second, err := vo.NewSlug(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestSlugWithSuffix(t *testing.T) {
	base, err := vo.NewSlug("Барсік")
	require.NoError(t, err)

	t.Run("добавляет суффикс", func(t *testing.T) {
		s, err := base.WithSuffix(2)
		require.NoError(t, err)
		assert.Equal(t, "barsik-2", s.String())
	})

	t.Run("укорачивает длинную основу", func(t *testing.T) {
		long, err := vo.NewSlug(strings.Repeat("ab-", 21) + "a")
		require.NoError(t, err)

		s, err := long.WithSuffix(12)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s.String()), vo.MaxSlugLength)
		assert.True(t, strings.HasSuffix(s.String(), "-12"))
		assert.NotContains(t, s.String(), "--")
	})

	t.Run("суффикс меньше 2 запрещен", func(t *testing.T) {
		_, err := base.WithSuffix(1)
		assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
	})
}
