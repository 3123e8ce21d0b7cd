package environment

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ParseEnvTags fills the struct cfg points to from the environment.
//
// Each field tagged env:"KEY" reads <prefix>_KEY. An unset or empty variable
// falls back to default:"...", and fails when required:"true" is set.
// Supported kinds are string, bool, signed integers, time.Duration and
// []string, which is split on separator:"..." (comma when absent).
func ParseEnvTags(prefix string, cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.New("cfg must be a pointer to a struct")
	}
	v = v.Elem()

	for _, sf := range reflect.VisibleFields(v.Type()) {
		key, ok := sf.Tag.Lookup("env")
		if !ok || key == "" || !sf.IsExported() {
			continue
		}

		name := GetNamespaceEnvKey(prefix, key)
		raw := os.Getenv(name)
		if raw == "" {
			if sf.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", name)
			}
			raw = sf.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := assign(v.FieldByIndex(sf.Index), raw, sf.Tag.Get("separator")); err != nil {
			return fmt.Errorf("%s (field %s): %w", name, sf.Name, err)
		}
	}
	return nil
}

var durationType = reflect.TypeFor[time.Duration]()

// assign decodes raw into dst according to dst's type.
func assign(dst reflect.Value, raw, sep string) error {
	if dst.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		dst.SetInt(int64(d))
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		dst.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(n)

	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", dst.Type())
		}
		if sep == "" {
			sep = ","
		}
		parts := strings.Split(raw, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		dst.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported field type %s", dst.Type())
	}
	return nil
}
