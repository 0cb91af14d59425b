package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/tresor228/pitch-ia/models"
)

var (
	// 1. [Problème] ...
	sectionItem     = regexp.MustCompile(`\d+\.\s*\[([^\]\n]*)\][ \t]*`)
	sectionBoundary = regexp.MustCompile(`\n\d+\.`)

	sectionMarker = regexp.MustCompile(`\[(Problème|Solution|Marché|Valeur|Canaux|Modèle)\]`)
	boldSpan      = regexp.MustCompile(`\*\*(.*?)\*\*`)

	pitchPolicy = newPitchPolicy()
)

func newPitchPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h3", "strong", "br")
	return p
}

// FormatPitch transforme le texte brut en HTML pour le panneau du pitch.
// L'ordre des substitutions compte: marqueurs de section, gras, puis sauts
// de ligne. Le résultat ne garde que h3, strong et br.
func FormatPitch(raw string) string {
	out := strings.ReplaceAll(raw, "\r\n", "\n")
	out = sectionMarker.ReplaceAllString(out, "<h3>$1</h3>")
	out = boldSpan.ReplaceAllString(out, "<strong>$1</strong>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return pitchPolicy.Sanitize(out)
}

// PlainText retourne le texte visible du HTML produit par FormatPitch, avec
// un saut de ligne à la place de chaque <br>.
func PlainText(html string) string {
	withBreaks := strings.NewReplacer("<br>", "\n", "<br/>", "\n").Replace(html)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

// ExtractSections lit les éléments numérotés "<n>. [<Libellé>] <texte>".
// Le texte court jusqu'au prochain élément numéroté en début de ligne ou
// jusqu'à la fin. Les libellés inconnus et les textes vides sont ignorés.
func ExtractSections(raw string) models.Sections {
	out := models.Sections{}
	rest := strings.ReplaceAll(raw, "\r\n", "\n")
	for {
		loc := sectionItem.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		label := rest[loc[2]:loc[3]]
		tail := rest[loc[1]:]
		end := len(tail)
		if b := sectionBoundary.FindStringIndex(tail); b != nil {
			end = b[0]
		}
		body := strings.TrimSpace(tail[:end])
		if key, ok := models.LookupSection(label); ok && body != "" {
			out[key] = body
		}
		rest = tail[end:]
	}
	return out
}

// ComposePitch reconstruit un texte numéroté à partir de champs explicites.
func ComposePitch(s models.Sections) string {
	var lines []string
	n := 1
	for _, key := range models.SectionKeys {
		v := s.Get(key)
		if v == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", n, key.Label(), v))
		n++
	}
	return strings.Join(lines, "\n")
}

// ParseSections extrait les sections d'une réponse du modèle. Si le format
// numéroté n'est pas respecté, on essaie les libellés suivis de ':' puis, en
// dernier recours, tout le contenu va dans Problème.
func ParseSections(content string) models.Sections {
	result := ExtractSections(content)
	if !result.Empty() {
		return result
	}

	result = parseColonLabels(content)
	if !result.Empty() {
		return result
	}

	if trimmed := strings.TrimSpace(content); trimmed != "" {
		result[models.SectionProblem] = trimmed
	}
	return result
}

func parseColonLabels(content string) models.Sections {
	buf := map[models.SectionKey][]string{}
	var current models.SectionKey
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if key, rest, ok := cutColonLabel(trimmed); ok {
			current = key
			if rest != "" {
				buf[current] = append(buf[current], rest)
			}
			continue
		}
		if current != "" {
			buf[current] = append(buf[current], trimmed)
		}
	}

	result := models.Sections{}
	for key, lines := range buf {
		result[key] = strings.Join(lines, " \n")
	}
	return result
}

func cutColonLabel(line string) (models.SectionKey, string, bool) {
	label, rest, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key, ok := models.LookupSection(label)
	if !ok {
		return "", "", false
	}
	return key, strings.TrimSpace(rest), true
}
