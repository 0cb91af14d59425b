// Package client parle au serveur de pitchs: génération, exemples et partage.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/models"
)

const (
	PathGeneratePitch = "/generate-pitch"
	PathExamples      = "/examples"
	PathShare         = "/share"
)

// Client est le transport HTTP du contrôleur.
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
}

// New crée un client pour baseURL. Aucune relance automatique n'est
// configurée: chaque échec remonte tel quel.
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	rc := resty.New()
	rc.SetBaseURL(strings.TrimRight(baseURL, "/"))
	rc.SetTimeout(timeout)
	rc.SetHeader("Accept", "application/json")
	rc.SetHeader("User-Agent", "pitch-ia/1.0")
	rc.SetRetryCount(0)

	return &Client{http: rc, log: log}
}

// GeneratePitch envoie la requête et décode la réponse. Les erreurs
// retournées sont toujours des *models.Error.
func (c *Client) GeneratePitch(ctx context.Context, req models.PitchRequest) (*models.PitchResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(PathGeneratePitch)
	if err != nil {
		c.log.WithError(err).Warn("generate-pitch request failed")
		return nil, models.NewError(models.KindNetwork, 0, models.MsgNetwork, err)
	}

	if resp.IsError() {
		e := MapFailure(resp.StatusCode(), resp.Body())
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode(),
			"kind":   e.Kind.String(),
		}).Warn("generate-pitch rejected")
		return nil, e
	}

	var out models.PitchResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, models.NewError(models.KindNetwork, resp.StatusCode(), models.MsgServerError, fmt.Errorf("decode pitch response: %w", err))
	}
	return &out, nil
}

// MapFailure traduit une réponse non-2xx en message utilisateur.
//
// 503 l'emporte sur tout le reste, puis 429 ou un message contenant
// "quota", puis le champ error du serveur tel quel.
func MapFailure(status int, body []byte) *models.Error {
	var payload models.ErrorResponse
	parseErr := json.Unmarshal(body, &payload)
	serverMsg := strings.TrimSpace(payload.Error)
	cause := fmt.Errorf("http %d: %s", status, serverMsg)

	switch {
	case status == http.StatusServiceUnavailable:
		return models.NewError(models.KindServiceUnavailable, status, models.MsgServiceUnavailable, cause)
	case status == http.StatusTooManyRequests || strings.Contains(strings.ToLower(serverMsg), "quota"):
		return models.NewError(models.KindRateLimit, status, models.MsgRateLimit, cause)
	case parseErr != nil:
		return models.NewError(models.KindNetwork, status, models.MsgServerError, fmt.Errorf("http %d: unreadable error body: %w", status, parseErr))
	case serverMsg == "":
		return models.NewError(models.KindServer, status, models.MsgServerError, cause)
	default:
		return models.NewError(models.KindServer, status, serverMsg, cause)
	}
}

// Examples retourne les pitchs d'exemple du serveur.
func (c *Client) Examples(ctx context.Context) ([]string, error) {
	var out []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(PathExamples)
	if err != nil {
		return nil, models.NewError(models.KindNetwork, 0, models.MsgNetwork, err)
	}
	if resp.IsError() {
		return nil, MapFailure(resp.StatusCode(), resp.Body())
	}
	return out, nil
}

// Share demande au serveur de partager un pitch par email et retourne son
// message de confirmation.
func (c *Client) Share(ctx context.Context, pitch, email string) (string, error) {
	var out models.ShareResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SharePitchRequest{Pitch: pitch, Email: email}).
		SetResult(&out).
		Post(PathShare)
	if err != nil {
		return "", models.NewError(models.KindNetwork, 0, models.MsgNetwork, err)
	}
	if resp.IsError() {
		return "", MapFailure(resp.StatusCode(), resp.Body())
	}
	return out.Message, nil
}
