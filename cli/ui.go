package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/controllers"
	"github.com/tresor228/pitch-ia/models"
	"github.com/tresor228/pitch-ia/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1).
			Width(80)

	pitchStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(1, 2).
			Width(80)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// TerminalBinding affiche l'état du contrôleur dans un terminal. Un
// terminal ne peut pas effacer une ligne déjà écrite: le retrait d'une
// bannière est seulement journalisé.
type TerminalBinding struct {
	out io.Writer
	log logrus.FieldLogger

	triggerEnabled bool
	sections       map[models.SectionKey]string
	pitchHTML      string
}

func NewTerminalBinding(out io.Writer, log logrus.FieldLogger) *TerminalBinding {
	return &TerminalBinding{
		out:      out,
		log:      log,
		sections: map[models.SectionKey]string{},
	}
}

func (b *TerminalBinding) SetTriggerEnabled(enabled bool) {
	b.triggerEnabled = enabled
}

// TriggerEnabled indique si une génération peut être lancée.
func (b *TerminalBinding) TriggerEnabled() bool {
	return b.triggerEnabled
}

func (b *TerminalBinding) SetLoading(loading bool) {
	if loading {
		fmt.Fprintln(b.out, loadingStyle.Render("⏳ Génération du pitch en cours..."))
	}
}

func (b *TerminalBinding) ClearSections() {
	b.sections = map[models.SectionKey]string{}
}

func (b *TerminalBinding) SetSection(key models.SectionKey, text string) {
	b.sections[key] = text
}

func (b *TerminalBinding) SetPitch(html string) {
	b.pitchHTML = html
}

func (b *TerminalBinding) RevealResults() {
	fmt.Fprintln(b.out, titleStyle.Render("🎯 Votre pitch"))
	for _, key := range models.SectionKeys {
		text := b.sections[key]
		if text == "" {
			continue
		}
		fmt.Fprintln(b.out, sectionStyle.Render(titleStyle.Render(key.Label())+"\n"+text))
	}
	fmt.Fprintln(b.out, pitchStyle.Render(service.PlainText(b.pitchHTML)))
}

func (b *TerminalBinding) InsertBanner(banner controllers.Banner) {
	if banner.Kind == controllers.BannerSuccess {
		fmt.Fprintln(b.out, successStyle.Render("✔ "+banner.Message))
		return
	}
	fmt.Fprintln(b.out, errorStyle.Render("⚠ "+banner.Message))
}

func (b *TerminalBinding) RemoveBanner(banner controllers.Banner) {
	b.log.WithFields(logrus.Fields{"id": banner.ID, "kind": banner.Kind.String()}).Debug("banner expired")
}

func (b *TerminalBinding) SetCopyLabel(label string) {
	if label == controllers.CopiedLabel {
		fmt.Fprintln(b.out, successStyle.Render("📋 "+label))
	}
}

// SystemClipboard écrit dans le presse-papiers du système.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

func renderExamples(out io.Writer, examples []string) {
	if len(examples) == 0 {
		fmt.Fprintln(out, loadingStyle.Render("Aucun exemple disponible"))
		return
	}
	for i, ex := range examples {
		header := titleStyle.Render(fmt.Sprintf("Exemple %d", i+1))
		fmt.Fprintln(out, sectionStyle.Render(header+"\n"+strings.TrimSpace(ex)))
	}
}
