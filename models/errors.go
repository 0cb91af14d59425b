package models

import (
	"errors"
	"fmt"
)

// ErrorKind classe les échecs montrés à l'utilisateur.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNetwork
	KindServer
	KindRateLimit
	KindServiceUnavailable
	KindClipboard
	KindBusy
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindRateLimit:
		return "rate_limit"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindClipboard:
		return "clipboard"
	case KindBusy:
		return "busy"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Messages affichés dans les bannières.
const (
	MsgValidation         = "Veuillez décrire votre idée (minimum 10 caractères)"
	MsgRateLimit          = "Limite de requêtes atteinte. Veuillez réessayer plus tard."
	MsgServiceUnavailable = "Service temporairement indisponible"
	MsgServerError        = "Erreur serveur"
	MsgNetwork            = "Erreur lors de la génération du pitch"
	MsgClipboard          = "Impossible de copier. Sélectionnez le texte manuellement."
	MsgBusy               = "Une génération est déjà en cours"
	MsgSuccess            = "Pitch généré avec succès !"
	MsgNoPitch            = "Aucun pitch généré"
)

// Error porte le message destiné à l'utilisateur et la cause technique.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError construit une erreur typée.
func NewError(kind ErrorKind, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: cause}
}

// IsKind indique si err (ou une erreur enveloppée) est du type donné.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// UserMessage retourne le texte à afficher pour n'importe quelle erreur.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgNetwork
}
