package cli

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tresor228/pitch-ia/models"
)

// ideaValidator refuse les idées trop courtes, avec le même critère que le
// contrôleur.
func ideaValidator(valid func(string) bool) survey.Validator {
	return func(val interface{}) error {
		str, _ := val.(string)
		if !valid(str) {
			return errors.New(models.MsgValidation)
		}
		return nil
	}
}

// PromptRequest demande l'idée puis les champs optionnels.
func PromptRequest(valid func(string) bool) (models.PitchRequest, error) {
	answers := struct {
		Idea          string `survey:"idea"`
		TargetMarket  string `survey:"targetMarket"`
		UniqueValue   string `survey:"uniqueValue"`
		Competitors   string `survey:"competitors"`
		BusinessModel string `survey:"businessModel"`
	}{}

	questions := []*survey.Question{
		{
			Name: "idea",
			Prompt: &survey.Multiline{
				Message: "Décrivez votre idée de projet :",
				Help:    "Au moins 10 caractères. Ex : une app mobile de gestion d'inventaire pour petits commerçants.",
			},
			Validate: ideaValidator(valid),
		},
		{
			Name:   "targetMarket",
			Prompt: &survey.Input{Message: "Marché cible (optionnel) :"},
		},
		{
			Name:   "uniqueValue",
			Prompt: &survey.Input{Message: "Ce qui vous rend unique (optionnel) :"},
		},
		{
			Name:   "competitors",
			Prompt: &survey.Input{Message: "Concurrents principaux (optionnel) :"},
		},
		{
			Name:   "businessModel",
			Prompt: &survey.Input{Message: "Modèle économique (optionnel) :"},
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return models.PitchRequest{}, err
	}

	return models.PitchRequest{
		Idea:          strings.TrimSpace(answers.Idea),
		TargetMarket:  answers.TargetMarket,
		UniqueValue:   answers.UniqueValue,
		Competitors:   answers.Competitors,
		BusinessModel: answers.BusinessModel,
	}.Trimmed(), nil
}
