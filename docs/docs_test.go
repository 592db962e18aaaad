package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

type swaggerDoc struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) (swaggerDoc, string) {
	t.Helper()
	raw := SwaggerInfo.ReadDoc()

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, raw
}

func TestSwaggerDoc_CoversAnnotatedRoutes(t *testing.T) {
	req := require.New(t)
	doc, _ := readDoc(t)

	files, err := filepath.Glob(filepath.Join("..", "internal", "adapter", "api", "controller", "*_controller.go"))
	req.NoError(err)
	req.NotEmpty(files)

	var annotated []string
	for _, file := range files {
		content, err := os.ReadFile(file)
		req.NoError(err)
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(content), -1) {
			annotated = append(annotated, strings.ToLower(m[2])+" "+m[1])
		}
	}

	var documented []string
	for path, operations := range doc.Paths {
		for method := range operations {
			documented = append(documented, method+" "+path)
		}
	}

	sort.Strings(annotated)
	sort.Strings(documented)
	req.Equal(annotated, documented)
}

func TestSwaggerDoc_ReferencesResolve(t *testing.T) {
	doc, raw := readDoc(t)

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, ref := range refs {
		require.Contains(t, doc.Definitions, ref[1])
	}
}
