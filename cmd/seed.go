package cmd

import (
	"fmt"

	"print-shop/internal/dto/request"
	"print-shop/internal/usecase"
	"print-shop/pkg/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// seed-admin creates the first admin account. Running it again with the
// same email is a no-op.
var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the initial admin account",
	Example: `  print-shop seed-admin --email admin@percetakan.id --password 'rahasia123'
  ADMIN_EMAIL=admin@percetakan.id ADMIN_PASSWORD=rahasia123 print-shop seed-admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, repos, cleanup, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		req := &request.CreateAdminRequest{
			Name:            config.Admin.Name,
			Email:           config.Admin.Email,
			Password:        config.Admin.Password,
			ConfirmPassword: config.Admin.Password,
		}

		created, err := usecase.NewAuthService(repos, logger).SeedAdmin(cmd.Context(), req)
		if err != nil {
			if msg, ok := utils.UserMessage(err); ok {
				return fmt.Errorf("seed admin: %s", msg)
			}
			return fmt.Errorf("seed admin: %w", err)
		}

		if !created {
			logger.Info("Admin already exists, nothing to do", zap.String("email", req.Email))
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s already exists\n", req.Email)
			return nil
		}

		logger.Info("Admin created", zap.String("email", req.Email))
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created\n", req.Email)
		return nil
	},
}

func init() {
	flags := seedAdminCmd.Flags()
	flags.String("name", "Administrator", "admin display name")
	flags.String("email", "", "admin login email (ADMIN_EMAIL)")
	flags.String("password", "", "admin password, at least 8 characters (ADMIN_PASSWORD)")

	viper.BindPFlag("ADMIN_NAME", flags.Lookup("name"))
	viper.BindPFlag("ADMIN_EMAIL", flags.Lookup("email"))
	viper.BindPFlag("ADMIN_PASSWORD", flags.Lookup("password"))
}
