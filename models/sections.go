package models

import "strings"

// SectionKey identifie un des six emplacements affichés.
type SectionKey string

const (
	SectionProblem  SectionKey = "problem"
	SectionSolution SectionKey = "solution"
	SectionMarket   SectionKey = "market"
	SectionValue    SectionKey = "value"
	SectionChannels SectionKey = "channels"
	SectionModel    SectionKey = "model"
)

// SectionKeys liste les emplacements dans l'ordre d'affichage.
var SectionKeys = []SectionKey{
	SectionProblem,
	SectionSolution,
	SectionMarket,
	SectionValue,
	SectionChannels,
	SectionModel,
}

// Label retourne le marqueur français utilisé dans le texte du pitch.
func (k SectionKey) Label() string {
	switch k {
	case SectionProblem:
		return "Problème"
	case SectionSolution:
		return "Solution"
	case SectionMarket:
		return "Marché"
	case SectionValue:
		return "Valeur"
	case SectionChannels:
		return "Canaux"
	case SectionModel:
		return "Modèle"
	}
	return ""
}

// sectionAliases accepte aussi les libellés sans accents.
var sectionAliases = map[string]SectionKey{
	"problème": SectionProblem,
	"probleme": SectionProblem,
	"solution": SectionSolution,
	"marché":   SectionMarket,
	"marche":   SectionMarket,
	"valeur":   SectionValue,
	"canaux":   SectionChannels,
	"modèle":   SectionModel,
	"modele":   SectionModel,
}

// LookupSection retrouve la clé correspondant à un libellé, sans tenir
// compte de la casse.
func LookupSection(label string) (SectionKey, bool) {
	k, ok := sectionAliases[strings.ToLower(strings.TrimSpace(label))]
	return k, ok
}

// Sections associe une clé au texte extrait. Une clé absente équivaut à un
// emplacement vide.
type Sections map[SectionKey]string

func (s Sections) setIfPresent(k SectionKey, v string) {
	if v = strings.TrimSpace(v); v != "" {
		s[k] = v
	}
}

// Get retourne le texte de l'emplacement, vide s'il n'existe pas.
func (s Sections) Get(k SectionKey) string {
	return s[k]
}

// Merge copie les valeurs non vides de other par-dessus s.
func (s Sections) Merge(other Sections) Sections {
	for k, v := range other {
		s.setIfPresent(k, v)
	}
	return s
}

// Empty indique qu'aucun emplacement n'a de contenu.
func (s Sections) Empty() bool {
	for _, v := range s {
		if v != "" {
			return false
		}
	}
	return true
}
