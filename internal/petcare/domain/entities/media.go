package entities

import (
	"slices"
	"strings"

	"petcare/internal/petcare/domain/domainerr"
)

var (
	ErrEmptyMediaURL    = domainerr.InvalidArgument("media url cannot be empty")
	ErrMediaExists      = domainerr.InvalidState("media url is already attached")
	ErrMediaNotAttached = domainerr.InvalidState("media url is not attached")
)

// checkNewMedia возвращает очищенный URL, если его можно добавить в список.
func checkNewMedia(list []string, url string) (string, error) {
	u := strings.TrimSpace(url)
	if u == "" {
		return "", ErrEmptyMediaURL
	}
	if slices.Contains(list, u) {
		return "", ErrMediaExists
	}
	return u, nil
}

// mediaIndex возвращает позицию URL в списке.
func mediaIndex(list []string, url string) (int, error) {
	i := slices.Index(list, strings.TrimSpace(url))
	if i < 0 {
		return -1, ErrMediaNotAttached
	}
	return i, nil
}

// cleanMediaList проверяет начальный список медиа при создании агрегата.
func cleanMediaList(urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, url := range urls {
		u, err := checkNewMedia(out, url)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
