package parser

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

type obj = map[string]any

var (
	documentSchema = mustSchema(documentSchemaDef())
	sectionSchema  = mustSchema(sectionSchemaDef(true))
)

func mustSchema(def obj) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("parser: compiling schema: %v", err))
	}
	return s
}

func str() obj { return obj{"type": "string"} }

func stringFields(keys ...string) obj {
	props := obj{}
	for _, k := range keys {
		props[k] = str()
	}
	return obj{"type": "object", "required": keys, "properties": props}
}

func boxSchema() obj {
	s := stringFields("top", "right", "bottom", "left")
	s["additionalProperties"] = false
	return s
}

func stylesSchema() obj {
	return obj{
		"type": "object",
		"properties": obj{
			"backgroundColor": str(),
			"backgroundImage": str(),
			"textColor":       str(),
			"padding":         boxSchema(),
			"margin":          boxSchema(),
			"borderRadius":    str(),
			"boxShadow":       str(),
			"customCSS":       str(),
		},
		"additionalProperties": false,
	}
}

// sectionSchemaDef describes a generated section. Only type and content are
// required; styles and visible are defaulted by the parser.
func sectionSchemaDef(root bool) obj {
	kinds := make([]any, len(site.SectionTypes))
	for i, k := range site.SectionTypes {
		kinds[i] = string(k)
	}
	s := obj{
		"type":     "object",
		"required": []string{"type", "content"},
		"properties": obj{
			"type":    obj{"type": "string", "enum": kinds},
			"content": obj{"type": "object"},
			"styles":  stylesSchema(),
			"visible": obj{"type": "boolean"},
		},
	}
	if root {
		s["$schema"] = "http://json-schema.org/draft-07/schema#"
	}
	return s
}

func documentSchemaDef() obj {
	typography := stringFields("fontFamily")
	typography["required"] = []string{"fontFamily", "fontSize"}
	typography["properties"].(obj)["headingFont"] = str()
	typography["properties"].(obj)["fontSize"] = stringFields("base", "h1", "h2", "h3", "h4")

	globalStyles := obj{
		"type":     "object",
		"required": []string{"colorScheme", "typography", "spacing"},
		"properties": obj{
			"colorScheme": stringFields("primary", "secondary", "accent", "background", "text"),
			"typography":  typography,
			"spacing":     stringFields("sectionGap", "containerPadding"),
		},
	}

	asset := obj{
		"type":     "object",
		"required": []string{"url"},
		"properties": obj{
			"id":   str(),
			"url":  str(),
			"type": obj{"type": "string", "enum": []any{string(site.AssetImage), string(site.AssetVideo), string(site.AssetIcon)}},
			"alt":  str(),
		},
	}

	metadata := stringFields("title", "description")
	metadata["properties"].(obj)["favicon"] = str()

	return obj{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"metadata", "globalStyles", "sections"},
		"properties": obj{
			"metadata":     metadata,
			"globalStyles": globalStyles,
			"sections":     obj{"type": "array", "minItems": 1, "items": sectionSchemaDef(false)},
			"assets":       obj{"type": "array", "items": asset},
		},
	}
}

// check validates data against schema, returning a SchemaViolation listing
// every failure.
func check(schema *gojsonschema.Schema, data []byte, what string) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return site.Wrap(site.MalformedResponse, err, "validating "+what)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]site.Violation, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, site.Violation{Path: e.Field(), Message: e.Description()})
	}
	return &site.Error{
		Kind:    site.SchemaViolation,
		Message: fmt.Sprintf("%s does not match schema: %s", what, violations[0]),
		Details: violations,
	}
}
