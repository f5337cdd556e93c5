// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	ErrConfig = errors.New(f("configuration error"))
)

// ErrConfigValue indicates a configuration value out of range.
type ErrConfigValue struct {
	Name  string
	Value string
}

func (err *ErrConfigValue) Error() string {
	return f("config '%v': invalid value %v", err.Name, err.Value)
}

func (err *ErrConfigValue) Is(target error) bool {
	return target == ErrConfig
}

// ErrConfigType indicates a configuration value of the wrong type.
type ErrConfigType struct {
	Name string
	Want string
	Got  string
}

func (err *ErrConfigType) Error() string {
	return f("config '%v': want %v, got %v", err.Name, err.Want, err.Got)
}

func (err *ErrConfigType) Is(target error) bool {
	return target == ErrConfig
}
