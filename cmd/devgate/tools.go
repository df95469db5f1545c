package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/devgate/internal/config"
)

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations as JSON",
		Args:  cobra.NoArgs,
		RunE:  toolsAction,
	}
}

func toolsAction(cmd *cobra.Command, _ []string) error {
	gw, err := newGateway(cmd)
	if err != nil {
		return err
	}
	j, err := json.MarshalIndent(gw.Declarations(), "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(j))
	return err
}

func newInstructionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instructions",
		Short: "Print the instructions given to agents",
		Args:  cobra.NoArgs,
		RunE:  instructionsAction,
	}
}

func instructionsAction(cmd *cobra.Command, _ []string) error {
	gw, err := newGateway(cmd)
	if err != nil {
		return err
	}
	logrus.WithField("sources", gw.PolicySources()).Info("access policy")
	_, err = fmt.Fprint(cmd.OutOrStdout(), gw.Instructions())
	return err
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and which keys the config file set",
		Args:  cobra.NoArgs,
		RunE:  configAction,
	}
}

func configAction(cmd *cobra.Command, _ []string) error {
	cfg, report, err := config.NewLoader().LoadReport()
	if err != nil {
		return err
	}
	j, err := json.MarshalIndent(struct {
		config.Report
		Config *config.Config `json:"config"`
	}{report, cfg}, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(j))
	return err
}
