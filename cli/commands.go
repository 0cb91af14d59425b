// Package cli est le client en ligne de commande du serveur de pitchs.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tresor228/pitch-ia/client"
	"github.com/tresor228/pitch-ia/config"
	"github.com/tresor228/pitch-ia/controllers"
	"github.com/tresor228/pitch-ia/models"
)

// ErrReported enveloppe une erreur déjà affichée par la vue.
var ErrReported = errors.New("already reported")

type rootOptions struct {
	cfg     *config.Config
	server  string
	timeout time.Duration
	debug   bool
}

func (o *rootOptions) client(log logrus.FieldLogger) *client.Client {
	return client.New(o.server, o.timeout, log)
}

// NewRootCmd crée la commande racine "pitch".
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Load()}

	rootCmd := &cobra.Command{
		Use:   "pitch",
		Short: "Pitch IA - génère un pitch à partir d'une idée de projet",
		Long: `Pitch IA envoie votre idée de projet au serveur de génération et affiche
le pitch obtenu, découpé en six sections : Problème, Solution, Marché,
Valeur, Canaux et Modèle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				opts.cfg.LogLevel = "debug"
			}
			config.SetupLogging(opts.cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", opts.cfg.ServerURL, "URL du serveur de pitchs")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", opts.cfg.ClientTimeout, "Délai maximum d'une requête")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Active les logs de debug")

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newExamplesCmd(opts))
	rootCmd.AddCommand(newShareCmd(opts))

	return rootCmd
}

type generateOptions struct {
	req  models.PitchRequest
	copy bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Génère un pitch",
		Long: `Génère un pitch pour une idée de projet. Sans --idea, les champs sont
demandés de façon interactive.
Exemple: pitch generate --idea "Une app de gestion d'inventaire pour petits commerçants" --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.WithField("component", "cli")
			if opts.req.Idea == "" {
				req, err := PromptRequest(controllers.ValidIdea)
				if err != nil {
					return err
				}
				opts.req = req
			}
			return runGenerate(cmd, root.client(log), SystemClipboard{}, opts, log)
		},
	}

	cmd.Flags().StringVar(&opts.req.Idea, "idea", "", "Description de l'idée (10 caractères minimum)")
	cmd.Flags().StringVar(&opts.req.TargetMarket, "target-market", "", "Marché cible")
	cmd.Flags().StringVar(&opts.req.UniqueValue, "unique-value", "", "Ce qui rend le projet unique")
	cmd.Flags().StringVar(&opts.req.Competitors, "competitors", "", "Concurrents principaux")
	cmd.Flags().StringVar(&opts.req.BusinessModel, "business-model", "", "Modèle économique")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copie le pitch dans le presse-papiers")

	return cmd
}

func runGenerate(cmd *cobra.Command, transport controllers.Transport, cb controllers.Clipboard, opts *generateOptions, log logrus.FieldLogger) error {
	ui := NewTerminalBinding(cmd.OutOrStdout(), log)
	ctrl := controllers.NewPitchRequestController(ui, transport, cb, controllers.WithLogger(log))
	defer ctrl.Close()

	ctrl.OnIdeaChanged(opts.req.Idea)
	if _, err := ctrl.Generate(cmd.Context(), opts.req); err != nil {
		return errors.Join(ErrReported, err)
	}

	if opts.copy {
		// l'échec est déjà affiché; le pitch reste lisible à l'écran
		_ = ctrl.CopyCurrentPitch()
	}
	return nil
}

func newExamplesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Affiche des exemples de pitchs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			examples, err := root.client(logrus.WithField("component", "cli")).Examples(cmd.Context())
			if err != nil {
				return err
			}
			renderExamples(cmd.OutOrStdout(), examples)
			return nil
		},
	}
}

func newShareCmd(root *rootOptions) *cobra.Command {
	var email, pitch, file string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Partage un pitch par email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPitch(cmd.InOrStdin(), pitch, file)
			if err != nil {
				return err
			}
			msg, err := root.client(logrus.WithField("component", "cli")).Share(cmd.Context(), text, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✔ "+msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Adresse du destinataire")
	cmd.Flags().StringVar(&pitch, "pitch", "", "Texte du pitch")
	cmd.Flags().StringVar(&file, "file", "", "Fichier contenant le pitch (- pour l'entrée standard)")
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("pitch", "file")

	return cmd
}

func readPitch(stdin io.Reader, pitch, file string) (string, error) {
	switch {
	case pitch != "":
		return pitch, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read pitch file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("--pitch ou --file requis")
}
