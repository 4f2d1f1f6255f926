package testutil

import "errors"

// ErrSimulated используется как sentinel ошибка для проверки путей обработки ошибок,
// например отказа хранилища отчётов.
var ErrSimulated = errors.New("simulated error for testing")
