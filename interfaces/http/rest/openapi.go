package rest

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	openAPIJSONOnce sync.Once
	openAPIJSON     []byte
	openAPIJSONErr  error
)

// OpenAPISpecJSON converts the embedded document to JSON.
func OpenAPISpecJSON() ([]byte, error) {
	openAPIJSONOnce.Do(func() {
		var spec interface{}
		if openAPIJSONErr = yaml.Unmarshal(openAPIYAML, &spec); openAPIJSONErr != nil {
			return
		}
		openAPIJSON, openAPIJSONErr = json.Marshal(spec)
	})
	return openAPIJSON, openAPIJSONErr
}

// openAPIHandler serves the API description as YAML, or JSON when the
// client asks for it.
func (rt *Router) openAPIHandler(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		spec, err := OpenAPISpecJSON()
		if err != nil {
			rt.deps.ErrorHandler.Handle(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(spec)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPIYAML)
}
