package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Travel-Assistant/api"
	configx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/logger"
)

const chatBanner = `TravelBot terminal chat. Type "exit" to quit or "/reset" to start a new conversation.`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with TravelBot in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		logCfg.Stderr = true
		logx.Init(*logCfg)

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				log.Warn().Err(err).Msg("close resources")
			}
		}()

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		return runChat(cmd.Context(), a.conversation(), sessionID, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runChat(ctx context.Context, conv api.Conversation, sessionID string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, chatBanner)
	fmt.Fprintf(out, "session: %s\n", sessionID)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/reset":
			if err := conv.Reset(ctx, sessionID); err != nil {
				return err
			}
			sessionID = uuid.NewString()
			fmt.Fprintf(out, "session: %s\n", sessionID)
			continue
		}

		reply, err := conv.HandleMessage(ctx, sessionID, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "TravelBot: %s\n", reply.Text)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("session", "", "Resume an existing session id (a new one is generated otherwise)")
}
