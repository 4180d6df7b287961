package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// lookupFunc reads one variable, reporting whether it is set
type lookupFunc func(key string) (string, bool)

// applyEnv copies `env`-tagged variables onto the fields of the struct dst points to,
// descending into nested sections. Unset and blank variables are skipped so that
// file and default values survive.
func applyEnv(dst interface{}, lookup lookupFunc) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: expected pointer to struct, got %T", dst)
	}
	return applyEnvToStruct(v.Elem(), lookup)
}

func applyEnvToStruct(section reflect.Value, lookup lookupFunc) error {
	t := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field, meta := section.Field(i), t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvToStruct(field, lookup); err != nil {
				return err
			}
			continue
		}

		key := meta.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if err := setFromString(field, raw); err != nil {
			return fmt.Errorf("%s (%s.%s): %w", key, t.Name(), meta.Name, err)
		}
	}
	return nil
}

// setFromString parses raw into field. Strings are kept verbatim since secrets
// and URLs may carry meaningful whitespace.
func setFromString(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}

// loadFromEnv overrides configuration with process environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(config, os.LookupEnv)
}
