package servers

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document. The result is cached; callers
// that modify it (for example clearing Servers for request validation) must work on a copy.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading spec: %w", err)
			return
		}
		if err = doc.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("error validating spec: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}

// LoadSwagger parses the document into a fresh value owned by the caller.
func LoadSwagger() (*openapi3.T, error) {
	if _, err := GetSwagger(); err != nil {
		return nil, err
	}
	return openapi3.NewLoader().LoadFromData(rawSpec)
}
