package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	description  string
	ownerEmail   string
	memberEmails string
	private      bool
)

var resolveTenantCmd = &cobra.Command{
	Use:   "resolve-tenant <domain>",
	Short: "Print the tenant id owning an email domain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		tenantID, err := graphClient.ResolveTenantID(commandContext(), args[0])
		if err != nil {
			log.Fatal().Err(err).Str("domain", args[0]).Msg("Failed to resolve tenant")
		}

		printJSON(models.TenantResponse{
			Domain:          args[0],
			TenantID:        tenantID,
			AdminConsentURL: graphClient.AdminConsentURL(tenantID),
		})
	},
}

var adminConsentCmd = &cobra.Command{
	Use:   "admin-consent-url <tenant-id>",
	Short: "Print the admin consent link for a tenant",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		if _, err := graph.ParseTenantID("https://login.windows.net/" + args[0]); err != nil {
			log.Fatal().Err(err).Msg("Invalid tenant id")
		}
		fmt.Println(graphClient.AdminConsentURL(args[0]))
	},
}

var createGroupCmd = &cobra.Command{
	Use:   "create-group <display-name>",
	Short: "Create a unified group owned by --owner",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		groupID, err := graphClient.CreateGroup(commandContext(), groupRequest(args[0]))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create group")
		}

		printJSON(models.GroupResponse{ID: groupID})
	},
}

var createTeamCmd = &cobra.Command{
	Use:   "create-team [display-name]",
	Short: "Create a team from the standard template",
	Long: `Create a team directly from the standard template. With --group the
existing group is promoted to a team instead.`,
	Args: createTeamArgs,
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()
		ctx := commandContext()

		groupID, _ := cmd.Flags().GetString("group")
		if groupID != "" {
			requested, err := graphClient.CreateTeamFromGroup(ctx, groupID, ownerEmail)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to request team")
			}
			printJSON(models.TeamResponse{GroupID: groupID, Requested: requested})
			return
		}

		created, err := graphClient.CreateTeam(ctx, groupRequest(args[0]))
		if !created {
			log.Fatal().Err(err).Msg("Team was not created")
		}
		printJSON(models.TeamResponse{Requested: created})
	},
}

// createTeamArgs requires a display name unless --group names the group to promote.
func createTeamArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 1)(cmd, args); err != nil {
		return err
	}
	if groupID, _ := cmd.Flags().GetString("group"); groupID == "" && len(args) == 0 {
		return errors.New("display name is required unless --group is set")
	}
	return nil
}

var lookupUserCmd = &cobra.Command{
	Use:   "lookup-user <email>",
	Short: "Print the directory id of a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		id := graphClient.RetrieveUserIDFromEmail(commandContext(), args[0])
		if id == "" {
			log.Fatal().Str("email", args[0]).Msg("User not found")
		}

		printJSON(models.UserResponse{Email: args[0], ID: id})
	},
}

func init() {
	for _, c := range []*cobra.Command{createGroupCmd, createTeamCmd} {
		c.Flags().StringVar(&ownerEmail, "owner", "", "email of the owner")
		c.Flags().StringVar(&description, "description", "", "description of the group")
		c.Flags().StringVar(&memberEmails, "members", "", "comma separated member emails")
		c.Flags().BoolVar(&private, "private", false, "create a private group")
		_ = c.MarkFlagRequired("owner")
	}
	createTeamCmd.Flags().String("group", "", "promote this existing group instead")

	rootCmd.AddCommand(resolveTenantCmd, adminConsentCmd, createGroupCmd, createTeamCmd, lookupUserCmd)
}

func groupRequest(displayName string) graph.GroupCreationRequest {
	return graph.GroupCreationRequest{
		DisplayName:  displayName,
		Description:  description,
		OwnerEmail:   ownerEmail,
		MemberEmails: graph.ParseMemberEmails(memberEmails),
		IsPrivate:    private,
	}
}

// commandContext carries the global logger so Graph calls log through it.
func commandContext() context.Context {
	return log.Logger.WithContext(context.Background())
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
}
