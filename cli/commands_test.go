package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresor228/pitch-ia/client"
	"github.com/tresor228/pitch-ia/controllers"
	"github.com/tresor228/pitch-ia/models"
)

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func newPitchServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunGenerateRendersSections(t *testing.T) {
	srv := newPitchServer(t, http.StatusOK, models.PitchResponse{
		Pitch: "1. [Problème] Les stocks sont mal suivis\n2. [Solution] Une app simple",
	})
	logger, _ := test.NewNullLogger()

	var out bytes.Buffer
	cb := &memClipboard{}
	opts := &generateOptions{
		req:  models.PitchRequest{Idea: "Une app de gestion d'inventaire"},
		copy: true,
	}

	err := runGenerate(testCommand(&out), client.New(srv.URL, 5*time.Second, logger), cb, opts, logger)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Génération du pitch en cours")
	assert.Contains(t, got, "Problème")
	assert.Contains(t, got, "Les stocks sont mal suivis")
	assert.Contains(t, got, models.MsgSuccess)
	assert.Contains(t, got, controllers.CopiedLabel)
	assert.Contains(t, cb.text, "Les stocks sont mal suivis")
	assert.NotContains(t, cb.text, "<h3>")
}

func TestRunGenerateReportsServerFailure(t *testing.T) {
	srv := newPitchServer(t, http.StatusServiceUnavailable, models.ErrorResponse{Error: "down"})
	logger, _ := test.NewNullLogger()

	var out bytes.Buffer
	opts := &generateOptions{req: models.PitchRequest{Idea: "Une idée assez longue"}}

	err := runGenerate(testCommand(&out), client.New(srv.URL, 5*time.Second, logger), &memClipboard{}, opts, logger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReported))
	assert.True(t, models.IsKind(err, models.KindServiceUnavailable))
	assert.Contains(t, out.String(), models.MsgServiceUnavailable)
	assert.NotContains(t, out.String(), models.MsgSuccess)
}

func TestRunGenerateRejectsShortIdea(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	logger, _ := test.NewNullLogger()

	var out bytes.Buffer
	opts := &generateOptions{req: models.PitchRequest{Idea: "court"}}

	err := runGenerate(testCommand(&out), client.New(srv.URL, time.Second, logger), &memClipboard{}, opts, logger)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindValidation))
	assert.False(t, called)
	assert.Contains(t, out.String(), models.MsgValidation)
}

func TestRunGenerateCopyFailureKeepsPitch(t *testing.T) {
	srv := newPitchServer(t, http.StatusOK, models.PitchResponse{Pitch: "1. [Valeur] Rapide"})
	logger, _ := test.NewNullLogger()

	var out bytes.Buffer
	opts := &generateOptions{req: models.PitchRequest{Idea: "Une idée assez longue"}, copy: true}

	err := runGenerate(testCommand(&out), client.New(srv.URL, time.Second, logger),
		&memClipboard{err: errors.New("no display")}, opts, logger)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rapide")
	assert.Contains(t, out.String(), models.MsgClipboard)
}

func TestExamplesCommand(t *testing.T) {
	srv := newPitchServer(t, http.StatusOK, []string{"Premier exemple", "Second exemple"})

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"examples", "--server", srv.URL})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Exemple 1")
	assert.Contains(t, out.String(), "Second exemple")
}

func TestShareCommand(t *testing.T) {
	var got models.SharePitchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, client.PathShare, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ShareResponse{Status: "success", Message: "Pitch partagé avec succès"})
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("  Mon pitch depuis stdin \n"))
	cmd.SetArgs([]string{"share", "--server", srv.URL, "--email", "ami@example.com", "--file", "-"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Mon pitch depuis stdin", got.Pitch)
	assert.Equal(t, "ami@example.com", got.Email)
	assert.Contains(t, out.String(), "Pitch partagé avec succès")
}

func TestShareCommandRequiresEmail(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"share", "--pitch", "x"})

	assert.Error(t, cmd.Execute())
}

func TestReadPitch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch.txt")
	require.NoError(t, os.WriteFile(path, []byte("\nDepuis un fichier\n"), 0o644))

	tests := []struct {
		name    string
		pitch   string
		file    string
		want    string
		wantErr bool
	}{
		{name: "flag", pitch: "Texte direct", want: "Texte direct"},
		{name: "stdin", file: "-", want: "Depuis stdin"},
		{name: "file", file: path, want: "Depuis un fichier"},
		{name: "missing file", file: filepath.Join(t.TempDir(), "absent"), wantErr: true},
		{name: "nothing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPitch(strings.NewReader(" Depuis stdin\n"), tt.pitch, tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminalBindingSkipsEmptySections(t *testing.T) {
	var out bytes.Buffer
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	b := NewTerminalBinding(&out, logger)

	b.SetTriggerEnabled(true)
	assert.True(t, b.TriggerEnabled())

	b.SetSection(models.SectionMarket, "PME")
	b.ClearSections()
	b.SetSection(models.SectionSolution, "Une app")
	b.SetPitch("2. <h3>Solution</h3> Une app")
	b.RevealResults()

	got := out.String()
	assert.Contains(t, got, "Une app")
	assert.NotContains(t, got, "PME")
	assert.NotContains(t, got, "<h3>")

	b.RemoveBanner(controllers.Banner{ID: 3, Kind: controllers.BannerError, Message: "x"})
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "banner expired", hook.LastEntry().Message)
}

func TestIdeaValidator(t *testing.T) {
	v := ideaValidator(controllers.ValidIdea)
	assert.NoError(t, v("Une idée assez longue"))
	assert.EqualError(t, v("  court  "), models.MsgValidation)
}
