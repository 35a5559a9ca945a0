package strategy

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	var ids []string
	for _, s := range c.All() {
		ids = append(ids, s.ID)
		assert.NotEmpty(t, s.DisplayName, s.ID)
		assert.NotEmpty(t, s.Evidence, s.ID)
	}
	assert.Equal(t, []string{"flipped", "pbl", "case-method", "peer-instruction"}, ids)

	_, err = c.Get("lol")
	assert.Equal(t, ErrNotFound, err)
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/_common.md.tmpl": {Data: []byte(`{{define "title"}}# {{.Title}}{{end}}`)},
		"tpl/simple.md.tmpl":  {Data: []byte(`{{template "title" .}} ({{join .Tags ", "}}) #{{inc 1}}`)},
		"tpl/broken.md.tmpl":  {Data: []byte(`{{if}}`)},
	}

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "ok", doc: "strategies:\n  - id: simple\n    template: simple.md.tmpl\n"},
		{name: "unknown field", doc: "strategies:\n  - id: simple\n    lol: true\n    template: simple.md.tmpl\n", wantErr: "decoding strategies"},
		{name: "no id", doc: "strategies:\n  - template: simple.md.tmpl\n", wantErr: "strategy without id"},
		{name: "no template", doc: "strategies:\n  - id: simple\n", wantErr: `strategy "simple": no template`},
		{
			name:    "duplicate",
			doc:     "strategies:\n  - id: simple\n    template: simple.md.tmpl\n  - id: simple\n    template: simple.md.tmpl\n",
			wantErr: `strategy "simple": duplicate id`,
		},
		{name: "missing template", doc: "strategies:\n  - id: gone\n    template: gone.md.tmpl\n", wantErr: `strategy "gone": parsing template`},
		{name: "broken template", doc: "strategies:\n  - id: broken\n    template: broken.md.tmpl\n", wantErr: `strategy "broken": parsing template`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load([]byte(tt.doc), fsys, "tpl")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			s, err := c.Get("simple")
			require.NoError(t, err)
			assert.Equal(t, "simple", s.DisplayName, "display name defaults to the id")

			out, err := c.Render("simple", map[string]interface{}{"Title": "Hola", "Tags": []string{"a", "b"}})
			require.NoError(t, err)
			assert.Equal(t, "# Hola (a, b) #2", out)
		})
	}
}

func TestCatalog_Render(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	_, err = c.Render("lol", nil)
	assert.Equal(t, ErrNotFound, errors.Cause(err))

	s, err := c.Get("flipped")
	require.NoError(t, err)

	data := map[string]interface{}{
		"Carrera":             "Ingeniería Comercial",
		"Strategy":            s,
		"ActivityTitle":       "Marketing de contenidos",
		"ActivityDescription": "Una pyme necesita una estrategia digital.",
		"LearningObjectives":  []struct{ Text, Taxonomy string }{{Text: "Analizar campañas", Taxonomy: "Análisis"}},
		"PreworkInstructions": "Leer el artículo.",
		"Evidences":           []string{"Informe"},
		"ExpectedEvidence":    s.Evidence,
		"ImplementationNotes": s.ImplementationNotes,
		"References":          s.References,
		"Warnings":            []string{"cuidado"},
	}
	out, err := c.Render("flipped", data)
	require.NoError(t, err)

	for _, want := range []string{
		"# Marketing de contenidos",
		"**Estrategia:** Aula invertida (Flipped Classroom)",
		"**Carrera:** Ingeniería Comercial",
		"1. Analizar campañas _(Análisis)_",
		"Leer el artículo.",
		"_Sin actividad en clase definida._",
		"- Informe",
		"### Alineación pedagógica",
		"- cuidado",
		"_Pendiente._",
		"## Referencias",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "**Semestre:**")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.md.tmpl"), []byte("custom {{.}}"), 0o600))
	fp := filepath.Join(dir, "strategies.yaml")
	require.NoError(t, os.WriteFile(fp, []byte("strategies:\n  - id: custom\n    display_name: Custom\n    template: custom.md.tmpl\n"), 0o600))

	c, err := LoadFile(fp)
	require.NoError(t, err)
	out, err := c.Render("custom", "ok")
	require.NoError(t, err)
	assert.Equal(t, "custom ok", out)

	_, err = LoadFile(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}
