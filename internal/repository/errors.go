package repository

import "errors"

// ErrNotFound - запись не существует либо принадлежит другому владельцу.
// Снаружи эти случаи неразличимы.
var ErrNotFound = errors.New("запись не найдена")
