package controllers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/models"
	"github.com/tresor228/pitch-ia/service"
)

const (
	ErrorBannerDelay   = 5 * time.Second
	SuccessBannerDelay = 3 * time.Second
	CopyResetDelay     = 2 * time.Second

	CopyLabel   = "Copier le Pitch"
	CopiedLabel = "Copié !"
)

var errNoClipboard = errors.New("clipboard unavailable")

// Option modifie un PitchRequestController à la construction.
type Option func(*PitchRequestController)

// WithScheduler remplace les minuteurs réels (tests).
func WithScheduler(s Scheduler) Option {
	return func(c *PitchRequestController) { c.sched = s }
}

// WithLogger remplace le logger par défaut.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *PitchRequestController) { c.log = l }
}

// WithDelays change la durée des bannières et du libellé "Copié !".
func WithDelays(errorDelay, successDelay, copyReset time.Duration) Option {
	return func(c *PitchRequestController) {
		c.errorDelay = errorDelay
		c.successDelay = successDelay
		c.copyReset = copyReset
	}
}

type activeBanner struct {
	banner Banner
	timer  Timer
}

// PitchRequestController valide le formulaire, envoie la requête, affiche
// le pitch et gère les retours transitoires (chargement, bannières, copie).
//
// Tous les appels au Binding se font sous mu, y compris depuis les
// minuteurs. Le Binding ne doit donc jamais rappeler le contrôleur.
type PitchRequestController struct {
	ui        Binding
	transport Transport
	clipboard Clipboard
	sched     Scheduler
	log       logrus.FieldLogger

	errorDelay   time.Duration
	successDelay time.Duration
	copyReset    time.Duration

	mu        sync.Mutex
	inFlight  bool
	current   models.DisplayModel
	banners   map[BannerKind]*activeBanner
	nextID    uint64
	copyTimer Timer
	copyGen   uint64
}

// NewPitchRequestController branche le contrôleur sur sa vue et ses
// dépendances. Le bouton reste désactivé tant que l'idée n'est pas valide.
func NewPitchRequestController(ui Binding, transport Transport, clipboard Clipboard, opts ...Option) *PitchRequestController {
	c := &PitchRequestController{
		ui:           ui,
		transport:    transport,
		clipboard:    clipboard,
		sched:        realScheduler{},
		log:          logrus.StandardLogger().WithField("component", "pitch-controller"),
		errorDelay:   ErrorBannerDelay,
		successDelay: SuccessBannerDelay,
		copyReset:    CopyResetDelay,
		banners:      make(map[BannerKind]*activeBanner),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mu.Lock()
	c.ui.SetTriggerEnabled(false)
	c.mu.Unlock()
	return c
}

// ValidIdea: l'idée doit faire au moins 10 caractères une fois nettoyée.
func ValidIdea(idea string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(idea)) >= models.MinIdeaLength
}

// Validate indique si la soumission est permise pour cette idée.
func (c *PitchRequestController) Validate(idea string) bool {
	return ValidIdea(idea)
}

// OnIdeaChanged est appelé à chaque modification du champ idée.
func (c *PitchRequestController) OnIdeaChanged(idea string) bool {
	valid := c.Validate(idea)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inFlight {
		c.ui.SetTriggerEnabled(valid)
	}
	return valid
}

// Submit envoie la requête. L'état de chargement est toujours levé au
// retour, quelle que soit l'issue. Chaque échec affiche une bannière.
func (c *PitchRequestController) Submit(ctx context.Context, req models.PitchRequest) (*models.PitchResponse, error) {
	req = req.Trimmed()
	if !c.Validate(req.Idea) {
		err := models.NewError(models.KindValidation, 0, models.MsgValidation, nil)
		c.ShowError(err.Message)
		return nil, err
	}

	release, ok := c.acquire()
	if !ok {
		return nil, models.NewError(models.KindBusy, 0, models.MsgBusy, nil)
	}
	defer release()

	resp, err := c.transport.GeneratePitch(ctx, req)
	if err != nil {
		var e *models.Error
		if !errors.As(err, &e) {
			e = models.NewError(models.KindNetwork, 0, models.MsgNetwork, err)
		}
		c.log.WithError(err).WithField("kind", e.Kind.String()).Warn("pitch generation failed")
		c.ShowError(e.Message)
		return nil, e
	}
	return resp, nil
}

// Generate enchaîne Submit et ParseAndDisplay, comme un clic sur le bouton.
func (c *PitchRequestController) Generate(ctx context.Context, req models.PitchRequest) (models.DisplayModel, error) {
	resp, err := c.Submit(ctx, req)
	if err != nil {
		return models.DisplayModel{}, err
	}
	dm := c.ParseAndDisplay(resp)
	c.ShowSuccess(models.MsgSuccess)
	return dm, nil
}

func (c *PitchRequestController) acquire() (release func(), ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return nil, false
	}
	c.inFlight = true
	c.ui.SetTriggerEnabled(false)
	c.ui.SetLoading(true)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.inFlight = false
			c.ui.SetLoading(false)
			c.ui.SetTriggerEnabled(true)
		})
	}, true
}

// BuildDisplay calcule ce qu'il faut afficher pour une réponse. Les champs
// explicites l'emportent sur ceux extraits du texte.
func BuildDisplay(resp *models.PitchResponse) models.DisplayModel {
	if resp.Variant() == models.EmptyPitch {
		return models.DisplayModel{
			HTML:        models.MsgNoPitch,
			Text:        models.MsgNoPitch,
			Sections:    models.Sections{},
			Placeholder: true,
		}
	}

	fields := resp.Fields()
	raw := resp.Pitch
	if strings.TrimSpace(raw) == "" {
		raw = service.ComposePitch(fields)
	}

	sections := service.ExtractSections(raw).Merge(fields)
	html := service.FormatPitch(raw)
	return models.DisplayModel{
		HTML:     html,
		Text:     service.PlainText(html),
		Sections: sections,
	}
}

// ParseAndDisplay vide les six emplacements puis affiche la réponse.
func (c *PitchRequestController) ParseAndDisplay(resp *models.PitchResponse) models.DisplayModel {
	dm := BuildDisplay(resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ui.ClearSections()
	for _, key := range models.SectionKeys {
		if v := dm.Sections.Get(key); v != "" {
			c.ui.SetSection(key, v)
		}
	}
	c.ui.SetPitch(dm.HTML)
	c.ui.RevealResults()
	c.current = dm
	return dm
}

// Current retourne le dernier affichage.
func (c *PitchRequestController) Current() models.DisplayModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CopyCurrentPitch copie le texte affiché. En cas d'échec une seule
// bannière d'erreur est affichée et une erreur KindClipboard est retournée.
func (c *PitchRequestController) CopyCurrentPitch() error {
	c.mu.Lock()
	text := c.current.Text
	c.mu.Unlock()

	err := errNoClipboard
	if c.clipboard != nil {
		err = c.clipboard.WriteAll(text)
	}
	if err != nil {
		e := models.NewError(models.KindClipboard, 0, models.MsgClipboard, err)
		c.log.WithError(err).Warn("copy to clipboard failed")
		c.ShowError(e.Message)
		return e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ui.SetCopyLabel(CopiedLabel)
	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	c.copyGen++
	gen := c.copyGen
	c.copyTimer = c.sched.AfterFunc(c.copyReset, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.copyGen {
			return
		}
		c.copyTimer = nil
		c.ui.SetCopyLabel(CopyLabel)
	})
	return nil
}

// ShowError affiche une bannière d'erreur pendant 5 secondes.
func (c *PitchRequestController) ShowError(message string) {
	c.showBanner(BannerError, message, c.errorDelay)
}

// ShowSuccess affiche une bannière de succès pendant 3 secondes.
func (c *PitchRequestController) ShowSuccess(message string) {
	c.showBanner(BannerSuccess, message, c.successDelay)
}

// showBanner remplace la bannière du même type et annule son minuteur.
func (c *PitchRequestController) showBanner(kind BannerKind, message string, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.banners[kind]; ok {
		prev.timer.Stop()
		delete(c.banners, kind)
		c.ui.RemoveBanner(prev.banner)
	}

	c.nextID++
	b := Banner{ID: c.nextID, Kind: kind, Message: message}
	c.ui.InsertBanner(b)
	c.banners[kind] = &activeBanner{
		banner: b,
		timer:  c.sched.AfterFunc(delay, func() { c.expireBanner(b) }),
	}
}

// expireBanner ne retire que la bannière pour laquelle le minuteur a été
// créé, même si Stop est arrivé trop tard.
func (c *PitchRequestController) expireBanner(b Banner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.banners[b.Kind]
	if !ok || cur.banner.ID != b.ID {
		return
	}
	delete(c.banners, b.Kind)
	c.ui.RemoveBanner(b)
}

// Close arrête les minuteurs en attente. Les bannières affichées restent.
func (c *PitchRequestController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ab := range c.banners {
		ab.timer.Stop()
	}
	c.banners = make(map[BannerKind]*activeBanner)
	if c.copyTimer != nil {
		c.copyTimer.Stop()
		c.copyTimer = nil
		c.copyGen++
	}
}
