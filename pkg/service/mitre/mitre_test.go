package mitre_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/service/mitre"
)

const testBundle = `{
  "type": "bundle",
  "objects": [
    {
      "type": "attack-pattern",
      "name": "Command and Scripting Interpreter",
      "description": "Adversaries may abuse command and script interpreters.",
      "external_references": [
        {"source_name": "mitre-attack", "external_id": "T1059"},
        {"source_name": "capec", "external_id": "CAPEC-242"}
      ]
    },
    {
      "type": "attack-pattern",
      "name": "Graphical User Interface",
      "description": "This technique has been revoked.",
      "revoked": true,
      "external_references": [
        {"source_name": "mitre-attack", "external_id": "T1061"}
      ]
    },
    {
      "type": "attack-pattern",
      "name": "Old Technique",
      "description": "This technique has been deprecated.",
      "x_mitre_deprecated": true,
      "external_references": [
        {"source_name": "mitre-attack", "external_id": "T1064"}
      ]
    },
    {
      "type": "intrusion-set",
      "name": "Some Group",
      "external_references": [
        {"source_name": "mitre-attack", "external_id": "G0001"}
      ]
    }
  ]
}`

func TestParse(t *testing.T) {
	techniques, err := mitre.Parse([]byte(testBundle))
	gt.NoError(t, err).Required()

	gt.Array(t, techniques).Length(1)
	gt.Value(t, techniques[0].ID).Equal("T1059")
	gt.Value(t, techniques[0].Name).Equal("Command and Scripting Interpreter")
	gt.Value(t, techniques[0].Description).Equal("Adversaries may abuse command and script interpreters.")
}

func TestParseMalformed(t *testing.T) {
	_, err := mitre.Parse([]byte("{not json"))
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagParse)).True()
}

func TestParseSkipsEntriesWithoutAttackID(t *testing.T) {
	bundle := `{"objects": [
		{"type": "attack-pattern", "name": "No Ref", "description": "d", "external_references": [{"source_name": "capec", "external_id": "CAPEC-1"}]}
	]}`

	techniques, err := mitre.Parse([]byte(bundle))
	gt.NoError(t, err).Required()
	gt.Array(t, techniques).Length(0)
}

func TestFetchTechniques(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodGet)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testBundle))
	}))
	defer srv.Close()

	svc := mitre.New(mitre.WithSourceURL(srv.URL))
	techniques, err := svc.FetchTechniques(context.Background())
	gt.NoError(t, err).Required()

	gt.Array(t, techniques).Length(1)
	gt.Value(t, techniques[0].ID).Equal("T1059")
}

func TestFetchTechniquesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := mitre.New(mitre.WithSourceURL(srv.URL))
	_, err := svc.FetchTechniques(context.Background())
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagFetch)).True()
}

func TestFetchTechniquesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the request

	svc := mitre.New(mitre.WithSourceURL(srv.URL))
	_, err := svc.FetchTechniques(context.Background())
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagFetch)).True()
}

func TestTechniqueToDocument(t *testing.T) {
	techniques, err := mitre.Parse([]byte(testBundle))
	gt.NoError(t, err).Required()
	gt.Array(t, techniques).Length(1)

	doc := techniques[0].ToDocument()
	gt.Value(t, doc.ID).Equal("T1059")
	gt.Value(t, doc.Content).Equal("Command and Scripting Interpreter (T1059)\nAdversaries may abuse command and script interpreters.")
}
