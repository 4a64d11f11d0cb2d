package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	svc "petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

var (
	ErrFileTooLarge        = domainerr.InvalidArgument("file exceeds the size limit")
	ErrExtensionNotAllowed = domainerr.InvalidArgument("file extension is not allowed")
	ErrForeignFileURL      = domainerr.InvalidArgument("url does not belong to this storage")
)

const (
	errCtxCreateFile = "error creating file"
	errCtxWriteFile  = "error writing file"
	errCtxRemoveFile = "error removing file"
)

// LocalFileStorage хранит файлы в каталоге на диске и отдает их по baseURL.
type LocalFileStorage struct {
	dir     string
	baseURL string
}

// NewLocalFileStorage создает хранилище. Каталог создается при первой загрузке.
func NewLocalFileStorage(dir, baseURL string) svc.FileStorage {
	return &LocalFileStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload сохраняет содержимое r под случайным именем с расширением исходного файла.
func (s *LocalFileStorage) Upload(
	ctx context.Context, r io.Reader, name string, maxBytes int64, allowedExtensions []string,
) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "Upload"), zap.String("name", name))

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || !slices.Contains(allowedExtensions, ext) {
		return "", fmt.Errorf("%w: %q", ErrExtensionNotAllowed, ext)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", errCtxCreateFile, err)
	}
	fileName := uuid.NewString() + "." + ext
	path := filepath.Join(s.dir, fileName)

	f, err := os.Create(path)
	if err != nil {
		log.Error(ctx, errCtxCreateFile, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCreateFile, err)
	}

	written, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrFileTooLarge) {
			return "", err
		}
		log.Error(ctx, errCtxWriteFile, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxWriteFile, err)
	}

	url := s.baseURL + "/" + fileName
	log.Debug(ctx, "file stored", zap.String("url", url), zap.Int64("bytes", written))
	return url, nil
}

// Delete удаляет файл по его URL. Отсутствующий файл не является ошибкой.
func (s *LocalFileStorage) Delete(ctx context.Context, url string) error {
	fileName, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return ErrForeignFileURL
	}

	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log(ctx).Error(ctx, errCtxRemoveFile, zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRemoveFile, err)
	}
	return nil
}
