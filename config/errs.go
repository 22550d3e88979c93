package config

import "errors"

var (
	ErrInvalid = errors.New("invalid configuration")
	ErrFormat  = errors.New("unsupported configuration format")
)
