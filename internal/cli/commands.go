package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skaland01/Kollektiv/types"
)

func newScheduleCmd(flags *globalFlags) *cobra.Command {
	var weeks int
	var format string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and print the rotation schedule for the coming weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := validateFormat(format); err != nil {
				return err
			}
			if weeks < 1 {
				return fmt.Errorf("--weeks must be at least 1, got %d", weeks)
			}

			a, err := wireApp(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, a.close()) }()

			rooms, members, err := a.roomsAndMembers(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := a.engine.GenerateSchedule(cmd.Context(), rooms, members, weeks)
			if err != nil {
				return err
			}

			return renderSchedule(cmd.OutOrStdout(), format, a.household, entries)
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 4, "Number of weeks to generate")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newDistributeCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Distribute rooms for the current week, favoring members who did less",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := validateFormat(format); err != nil {
				return err
			}

			a, err := wireApp(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, a.close()) }()

			rooms, members, err := a.roomsAndMembers(cmd.Context())
			if err != nil {
				return err
			}

			assignments := a.engine.Distribute(cmd.Context(), rooms, members)

			return renderAssignments(cmd.OutOrStdout(), format, a.household, a.engine.CurrentWeek(), assignments, a.engine.HistoricalLoad())
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newRotateCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Advance the stored assignments by one week",
		Long:  "rotate hands every member's rooms to the previous member and evens out bucket sizes. It needs --store so there is a previous week to rotate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := validateFormat(format); err != nil {
				return err
			}

			a, err := wireApp(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, a.close()) }()

			_, members, err := a.roomsAndMembers(cmd.Context())
			if err != nil {
				return err
			}

			assignments, err := a.engine.Rotate(cmd.Context(), members)
			if err != nil {
				if errors.Is(err, types.ErrInvalidState) {
					return fmt.Errorf("%w (run distribute after changing members)", err)
				}
				return err
			}
			if len(assignments) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "nothing to rotate: no stored assignments (run distribute or schedule with --store first)")
				return err
			}

			return renderAssignments(cmd.OutOrStdout(), format, a.household, a.engine.CurrentWeek(), assignments, a.engine.HistoricalLoad())
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newUpcomingCmd(flags *globalFlags) *cobra.Command {
	var member string
	var weeks int
	var format string

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show a member's rooms for this week and the weeks ahead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := validateFormat(format); err != nil {
				return err
			}

			a, err := wireApp(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, a.close()) }()

			upcoming := a.engine.UpcomingAssignmentsFor(types.MemberID(member), weeks)

			return renderUpcoming(cmd.OutOrStdout(), format, types.MemberID(member), upcoming)
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "Member id")
	cmd.Flags().IntVar(&weeks, "weeks", -1, "Weeks after the current one, 0 for this week only (negative uses the configured horizon)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func newResetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-history",
		Short: "Forget how many rooms each member has been assigned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			a, err := wireApp(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, a.close()) }()

			a.engine.ResetHistory(cmd.Context())

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "load history cleared")
			return err
		},
	}
}
