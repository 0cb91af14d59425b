package controllers

import (
	"context"
	"time"

	"github.com/tresor228/pitch-ia/models"
)

// BannerKind distingue les bannières d'erreur et de succès.
type BannerKind int

const (
	BannerError BannerKind = iota
	BannerSuccess
)

func (k BannerKind) String() string {
	if k == BannerSuccess {
		return "success"
	}
	return "error"
}

// Banner est un message transitoire affiché par la vue.
type Banner struct {
	ID      uint64
	Kind    BannerKind
	Message string
}

// Binding est la vue pilotée par le contrôleur. Le contrôleur sérialise
// tous ses appels: une implémentation n'a pas besoin de verrou.
type Binding interface {
	SetTriggerEnabled(enabled bool)
	SetLoading(loading bool)

	ClearSections()
	SetSection(key models.SectionKey, text string)
	SetPitch(html string)
	RevealResults()

	InsertBanner(b Banner)
	RemoveBanner(b Banner)

	SetCopyLabel(label string)
}

// Transport envoie une requête de génération au serveur.
type Transport interface {
	GeneratePitch(ctx context.Context, req models.PitchRequest) (*models.PitchResponse, error)
}

// Clipboard écrit du texte brut dans le presse-papiers.
type Clipboard interface {
	WriteAll(text string) error
}

// Timer est un minuteur annulable.
type Timer interface {
	Stop() bool
}

// Scheduler crée les minuteurs du contrôleur.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
