package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
	configx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the store tables if they are missing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		storeCfg, err := configx.New[storex.Config]("STORE")
		if err != nil {
			return err
		}
		provider := storex.NewProvider(*storeCfg)
		defer provider.Close()

		ctx := cmd.Context()
		db, err := provider.DB(ctx)
		if err != nil {
			return err
		}
		if err := storex.Migrate(ctx, db); err != nil {
			return err
		}

		if seed, _ := cmd.Flags().GetBool("seed"); seed {
			if err := storex.Seed(ctx, db); err != nil {
				return err
			}
			log.Info().Msg("demo catalogue seeded")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("seed", false, "Insert the demo hotels, transport and destination data")
}
