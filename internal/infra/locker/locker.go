// Package locker сериализует проверку доступности и запись бронирования для одного помещения
package locker

import (
	"context"
	"errors"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить до отмены контекста
	ErrLockTimeout = errors.New("locker: lock acquisition timed out")

	// ErrLockBackend возвращается при ошибке хранилища блокировок
	ErrLockBackend = errors.New("locker: backend error")
)

// FacilityLocker блокировка на уровне помещения
// unlock освобождает блокировку и безопасен для повторного вызова
type FacilityLocker interface {
	Lock(ctx context.Context, facilityID int64) (unlock func(), err error)
}
