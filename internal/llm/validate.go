package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds one compiled validator per Schema.Name.
var compiled sync.Map // string -> *jsonschema.Schema

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so the compiler sees json.Number values
	// instead of Go ints.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	url := "mem://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	v, _ := compiled.LoadOrStore(schema.Name, sch)
	return v.(*jsonschema.Schema), nil
}

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, err error) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, err)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("reply is not JSON: %w", err)
	}
	sch, err := compile(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %s: %w", schema.Name, err)}
	}
	if err := sch.Validate(doc); err != nil {
		return invalid("reply does not match schema: %w", err)
	}
	return nil
}

// buildContent turns a raw reply into Response.Content: validated JSON
// for structured requests, a JSON string otherwise.
func buildContent(schema *Schema, raw string) (json.RawMessage, error) {
	if schema != nil {
		content := json.RawMessage(raw)
		if err := validateResponse(schema, content); err != nil {
			return nil, err
		}
		return content, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode text reply: %w", err)
	}
	return b, nil
}

// finishResponse is the last step of every adapter. A structured reply
// cut off at the token limit becomes *ErrMaxTokensExceeded rather than a
// schema failure.
func finishResponse(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	if req.Schema != nil && stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}
	content, err := buildContent(req.Schema, text)
	if err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Text:       text,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
