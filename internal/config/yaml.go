// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"os"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// WriteYamlWithComments writes a flat struct as yaml, putting each field's
// `comment` tag above it.
func WriteYamlWithComments(value interface{}, header, filename string) error {
	data, err := MarshalWithComments(value, header)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o600)
}

func MarshalWithComments(value interface{}, header string) ([]byte, error) {
	v := reflect.Indirect(reflect.ValueOf(value))
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("expected a struct, got %s", v.Kind())
	}

	var buf bytes.Buffer
	if header != "" {
		for _, line := range strings.Split(header, "\n") {
			buf.WriteString("# " + line + "\n")
		}
		buf.WriteString("\n")
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if name == "-" || field.PkgPath != "" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		if comment := field.Tag.Get("comment"); comment != "" {
			buf.WriteString("# " + comment + "\n")
		}
		out, err := yaml.Marshal(map[string]interface{}{name: v.Field(i).Interface()})
		if err != nil {
			return nil, errors.Wrapf(err, "marshalling %s", name)
		}
		buf.Write(out)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
