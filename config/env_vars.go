// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

var durationType = reflect.TypeFor[time.Duration]()

// readEnv populates the struct pointed to by spec from the environment
// variables named in its `env:"NAME[,overwrite]"` field tags. Untagged struct
// fields are descended into.
//
// Without overwrite, a variable only fills a field that is still zero.
func readEnv(spec any) error {
	ptr := reflect.ValueOf(spec)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, ptr.Kind())
	}

	return readEnvStruct(ptr.Elem())
}

func readEnvStruct(structValue reflect.Value) error {
	structType := structValue.Type()

	for i := range structValue.NumField() {
		field := structValue.Field(i)
		fieldType := structType.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		tag, tagged := fieldType.Tag.Lookup("env")
		if !tagged {
			if field.Kind() == reflect.Struct {
				if err := readEnvStruct(field); err != nil {
					return err
				}
			}

			continue
		}

		name, options, _ := strings.Cut(tag, ",")

		envValue, exists := os.LookupEnv(name)
		if !exists {
			continue
		}

		overwrite := slices.Contains(strings.Split(options, ","), "overwrite")
		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("env var %s (field %s): %w", name, fieldType.Name, err)
		}
	}

	return nil
}

// setFieldValue parses envValue into field according to the field's type.
// Slices are comma-separated lists of strings.
func setFieldValue(field reflect.Value, envValue string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return err
		}

		field.SetInt(int64(d))

		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return err
		}

		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(envValue)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w: %s", errUnsupportedFieldType, field.Type())
		}

		var values []string

		for _, v := range strings.Split(envValue, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}

		field.Set(reflect.ValueOf(values))
	default:
		return fmt.Errorf("%w: %s", errUnsupportedFieldType, field.Kind())
	}

	return nil
}
