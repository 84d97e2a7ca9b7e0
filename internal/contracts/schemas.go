package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"listing-bff/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://listing-bff.local/"

const (
	DraftUpdateV1 = "DraftUpdate/1.0.0"
	DomainEventV1 = "DomainEvent/1.0.0"
)

var schemaFiles = map[string]string{
	DraftUpdateV1: "schemas/draft-update.v1.json",
	DomainEventV1: "schemas/domain-event.v1.json",
}

// Validator держит скомпилированные схемы по ключу "<Name>/<version>"
type Validator struct {
	compiled map[string]*jsonschema.Schema
}

// NewValidator компилирует все встроенные схемы
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	compiled := make(map[string]*jsonschema.Schema, len(schemaFiles))
	for key, path := range schemaFiles {
		raw, err := schemaFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
		}
		url := schemaBaseURL + path
		if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", path, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", path, err)
		}
		compiled[key] = schema
	}
	return &Validator{compiled: compiled}, nil
}

// Validate проверяет JSON-документ по схеме с ключом key
func (v *Validator) Validate(key string, body []byte) error {
	schema, ok := v.compiled[key]
	if !ok {
		return fmt.Errorf("schema '%s' not found", key)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("document is not a valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateDraft проверяет редактируемые поля черновика перед сохранением
func (v *Validator) ValidateDraft(listing domain.Listing) error {
	body, err := json.Marshal(map[string]any{
		"id":       listing.ID,
		"title":    listing.Title,
		"price":    listing.Price,
		"discount": listing.Discount,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := v.Validate(DraftUpdateV1, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ValidateEvent проверяет конверт доменного события
func (v *Validator) ValidateEvent(body []byte) error {
	return v.Validate(DomainEventV1, body)
}
