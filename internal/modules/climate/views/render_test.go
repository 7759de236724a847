package views

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if indexTmpl == nil {
		t.Fatal("LoadTemplates() left indexTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// fs.Sub rejects an invalid path.
	if err := loadTemplatesFromFS(fstest.MapFS{}, "../templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(\"../templates\") = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	prev := indexTmpl
	t.Cleanup(func() { indexTmpl = prev })

	badFS := fstest.MapFS{
		"templates/index.txt": {Data: []byte("{{ .")},
	}
	if err := loadTemplatesFromFS(badFS, "templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(badFS) = nil; want error")
	}
}

func TestRenderIndex_notLoaded(t *testing.T) {
	prev := indexTmpl
	indexTmpl = nil
	t.Cleanup(func() { indexTmpl = prev })

	var buf bytes.Buffer
	err := RenderIndex(&buf, &IndexData{})
	if err == nil {
		t.Fatal("RenderIndex() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderIndex(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}

	var buf bytes.Buffer
	err := RenderIndex(&buf, &IndexData{
		Title: "Welcome to the Climate API!",
		Routes: []RouteDoc{
			{Path: "/api/v1.0/precipitation"},
			{Path: "/api/v1.0/<start>", Description: "TMIN, TAVG, TMAX from start"},
		},
	})
	if err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Welcome to the Climate API!\n",
		"Available Routes:\n",
		"/api/v1.0/precipitation\n",
		"/api/v1.0/<start>  TMIN, TAVG, TMAX from start\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "&lt;") {
		t.Errorf("plain-text output was HTML-escaped:\n%s", out)
	}
}
