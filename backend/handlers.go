// Package backend expose la génération, les exemples, le partage et les
// pitchs sauvegardés.
package backend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/models"
	"github.com/tresor228/pitch-ia/service"
)

const (
	msgNotConfigured = "Impossible de générer le pitch : API non configurée. Vérifiez la variable d'environnement OPENAI_API_KEY."
	msgQuota         = "quota exceeded"
	msgInvalidBody   = "Requête invalide"
	msgIdeaRequired  = "Veuillez décrire votre projet."
	msgShared        = "Pitch partagé avec succès"
)

var examplePitches = []string{
	"Problème: Les petits commerçants ont du mal à gérer leur inventaire\nSolution: Une app mobile de gestion d'inventaire simplifiée\nClient cible: Petits commerçants indépendants\nValeur: Gain de temps et réduction des erreurs\nCanaux: Boutique en ligne, réseaux sociaux",
	"Problème: Manque de solutions de livraison rapide en zone rurale\nSolution: Réseau de livreurs locaux à vélo\nClient cible: Commerces ruraux et habitants\nValeur: Livraison en moins de 2h à prix abordable\nCanaux: Partenariats avec commerces, site web",
}

// Handler regroupe les routes JSON du serveur. gen peut être nil quand
// aucune clé API n'est configurée.
type Handler struct {
	gen   service.Generator
	store *Store
	log   logrus.FieldLogger
}

func NewHandler(gen service.Generator, store *Store, log logrus.FieldLogger) *Handler {
	return &Handler{gen: gen, store: store, log: log}
}

// GeneratePitch traite POST /generate-pitch.
func (h *Handler) GeneratePitch(c *gin.Context) {
	var req models.PitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgIdeaRequired})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
		return
	}
	req = req.Trimmed()
	if req.Idea == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgIdeaRequired})
		return
	}

	if h.gen == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: msgNotConfigured})
		return
	}

	content, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		status, msg := generationFailure(err)
		h.log.WithError(err).WithField("status", status).Error("pitch generation failed")
		c.JSON(status, models.ErrorResponse{Error: msg})
		return
	}

	saved, err := h.store.Save(models.Pitch{Content: content, Request: req})
	if err != nil {
		h.log.WithError(err).Error("save pitch failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgServerError})
		return
	}

	resp := models.PitchResponse{ID: saved.ID, Pitch: content}
	resp.SetFields(service.ParseSections(content))
	h.log.WithFields(logrus.Fields{"id": saved.ID, "variant": resp.Variant().String()}).Debug("pitch generated")
	c.JSON(http.StatusOK, resp)
}

func generationFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusServiceUnavailable, msgNotConfigured
	case errors.Is(err, service.ErrQuota):
		return http.StatusTooManyRequests, msgQuota
	default:
		return http.StatusInternalServerError, models.MsgNetwork
	}
}

// Examples traite GET /examples.
func (h *Handler) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, examplePitches)
}

type shareRequest struct {
	Pitch string `json:"pitch" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Share traite POST /share. Aucun email n'est réellement envoyé.
func (h *Handler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Pitch et email valide requis"})
		return
	}
	h.log.WithField("email", req.Email).Info("pitch shared")
	c.JSON(http.StatusOK, models.ShareResponse{Status: "success", Message: msgShared})
}

// ListPitches traite GET /pitches.
func (h *Handler) ListPitches(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

// GetPitch traite GET /pitches/:id.
func (h *Handler) GetPitch(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: ErrPitchNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePitch traite DELETE /pitches/:id.
func (h *Handler) DeletePitch(c *gin.Context) {
	err := h.store.Delete(c.Param("id"))
	switch {
	case errors.Is(err, ErrPitchNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case err != nil:
		h.log.WithError(err).Error("delete pitch failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgServerError})
	default:
		c.Status(http.StatusNoContent)
	}
}
