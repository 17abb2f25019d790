package locations

import "errors"

var (
	// ErrCacheMiss возвращается, когда список точек отсутствует в кеше
	ErrCacheMiss = errors.New("locations.cache: miss")

	// ErrCache возвращается при ошибках обращения к Redis
	ErrCache = errors.New("locations.cache: redis error")
)
