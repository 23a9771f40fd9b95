package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
)

// datasetCmd represents the dataset command
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Query datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var datasetValuesCmd = &cobra.Command{
	Use:   "values <dataset-id>",
	Short: "Print the values of a dataset",
	Long: `Print the values of a dataset directly from the database.

With --time the value at each time is printed. With --start and --end the
values of the range are printed. Otherwise the stored value is printed.

Example:
  hydractl dataset values 42 --user 1 --time 2024-01-01T00:00:00
  hydractl dataset values 42 --user 1 --start 2024-01-01 --end 2024-01-02 --unit hours --increment 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid dataset id %q", args[0])
		}
		userID, _ := cmd.Flags().GetInt64("user")
		times, _ := cmd.Flags().GetStringSlice("time")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		unit, _ := cmd.Flags().GetString("unit")
		increment, _ := cmd.Flags().GetFloat64("increment")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		conn, err := connect(log)
		if err != nil {
			return err
		}
		svc := newService(conn, log)
		ctx := cmd.Context()

		var result interface{}
		switch {
		case start != "" || end != "":
			result, err = svc.GetValsBetweenTimes(ctx, userID, datasetID, hydra.RangeQuery{
				Start:     start,
				End:       end,
				Unit:      unit,
				Increment: &increment,
			})
		case len(times) > 0:
			result, err = svc.GetValAtTime(ctx, userID, datasetID, times)
		default:
			result, err = svc.GetDataset(ctx, userID, datasetID)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetValuesCmd)

	flags := datasetValuesCmd.Flags()
	flags.Int64("user", 0, "Id of the user the query runs as")
	flags.StringSlice("time", nil, "Time to look up (repeatable)")
	flags.String("start", "", "Range start")
	flags.String("end", "", "Range end")
	flags.String("unit", "", "Range step unit, e.g. minutes or days")
	flags.Float64("increment", 1, "Range step size")
	_ = datasetValuesCmd.MarkFlagRequired("user")
}
