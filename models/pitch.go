package models

import (
	"strings"
	"time"
)

// MinIdeaLength est la longueur minimale (après trim) d'une idée soumise.
const MinIdeaLength = 10

// PitchRequest est le corps envoyé à POST /generate-pitch.
type PitchRequest struct {
	Idea          string `json:"idea" binding:"required"`
	TargetMarket  string `json:"targetMarket,omitempty"`
	UniqueValue   string `json:"uniqueAspect,omitempty"`
	Competitors   string `json:"competitors,omitempty"`
	BusinessModel string `json:"businessModel,omitempty"`
}

// Trimmed retourne une copie de la requête sans espaces superflus.
func (r PitchRequest) Trimmed() PitchRequest {
	return PitchRequest{
		Idea:          strings.TrimSpace(r.Idea),
		TargetMarket:  strings.TrimSpace(r.TargetMarket),
		UniqueValue:   strings.TrimSpace(r.UniqueValue),
		Competitors:   strings.TrimSpace(r.Competitors),
		BusinessModel: strings.TrimSpace(r.BusinessModel),
	}
}

// Variant distingue les deux formes de réponse du serveur.
type Variant int

const (
	EmptyPitch Variant = iota
	FreeTextPitch
	StructuredPitch
)

func (v Variant) String() string {
	switch v {
	case FreeTextPitch:
		return "free-text"
	case StructuredPitch:
		return "structured"
	default:
		return "empty"
	}
}

// PitchResponse est la réponse de POST /generate-pitch: soit un texte libre
// (pitch), soit des champs explicites, soit les deux.
type PitchResponse struct {
	ID               string `json:"id,omitempty"`
	Pitch            string `json:"pitch,omitempty"`
	Problem          string `json:"problem,omitempty"`
	Solution         string `json:"solution,omitempty"`
	TargetMarket     string `json:"targetMarket,omitempty"`
	ValueProposition string `json:"valueProposition,omitempty"`
	Channels         string `json:"channels,omitempty"`
	BusinessModel    string `json:"businessModel,omitempty"`
}

// Fields retourne les champs explicites non vides de la réponse.
func (r *PitchResponse) Fields() Sections {
	s := Sections{}
	s.setIfPresent(SectionProblem, r.Problem)
	s.setIfPresent(SectionSolution, r.Solution)
	s.setIfPresent(SectionMarket, r.TargetMarket)
	s.setIfPresent(SectionValue, r.ValueProposition)
	s.setIfPresent(SectionChannels, r.Channels)
	s.setIfPresent(SectionModel, r.BusinessModel)
	return s
}

// Variant classe la réponse. Un seul champ explicite suffit pour la
// considérer structurée.
func (r *PitchResponse) Variant() Variant {
	if r == nil {
		return EmptyPitch
	}
	if len(r.Fields()) > 0 {
		return StructuredPitch
	}
	if strings.TrimSpace(r.Pitch) != "" {
		return FreeTextPitch
	}
	return EmptyPitch
}

// SetFields remplit les champs explicites à partir de sections extraites.
func (r *PitchResponse) SetFields(s Sections) {
	r.Problem = s[SectionProblem]
	r.Solution = s[SectionSolution]
	r.TargetMarket = s[SectionMarket]
	r.ValueProposition = s[SectionValue]
	r.Channels = s[SectionChannels]
	r.BusinessModel = s[SectionModel]
}

// DisplayModel est ce que le contrôleur affiche après une génération.
type DisplayModel struct {
	HTML        string
	Text        string
	Sections    Sections
	Placeholder bool
}

// Pitch est un pitch sauvegardé côté serveur.
type Pitch struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Request   PitchRequest `json:"request"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SharePitchRequest est le corps de POST /share.
type SharePitchRequest struct {
	Pitch string `json:"pitch"`
	Email string `json:"email"`
}

// ShareResponse est la réponse de POST /share.
type ShareResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse est le corps d'erreur commun à toutes les routes.
type ErrorResponse struct {
	Error string `json:"error"`
}
