package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	profileSchemaURL = "https://piemenu.local/schema/profile.schema.json"
	generalSchemaURL = "https://piemenu.local/schema/general.schema.json"
)

var (
	schemasOnce   sync.Once
	profileSchema *jsonschema.Schema
	generalSchema *jsonschema.Schema
	schemasErr    error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	for url, name := range map[string]string{
		profileSchemaURL: "schema/profile.schema.json",
		generalSchemaURL: "schema/general.schema.json",
	} {
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			schemasErr = err
			return
		}
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			schemasErr = fmt.Errorf("схема %s: %w", name, err)
			return
		}
	}

	profileSchema, schemasErr = compiler.Compile(profileSchemaURL)
	if schemasErr != nil {
		return
	}
	generalSchema, schemasErr = compiler.Compile(generalSchemaURL)
}

// validateRecord проверяет JSON-запись по встроенной схеме.
func validateRecord(schema func() *jsonschema.Schema, data []byte) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return err
	}
	if err := schema().Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ValidateProfileJSON проверяет файл профиля по схеме.
func ValidateProfileJSON(data []byte) error {
	return validateRecord(func() *jsonschema.Schema { return profileSchema }, data)
}

// ValidateGeneralJSON проверяет файл общих настроек по схеме.
func ValidateGeneralJSON(data []byte) error {
	return validateRecord(func() *jsonschema.Schema { return generalSchema }, data)
}
