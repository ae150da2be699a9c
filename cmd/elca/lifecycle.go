package main

import (
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// lifeCycleFlags are shared by lifecycle, component and convert.
type lifeCycleFlags struct {
	processConfig int64
	processDb     int64
}

func (f *lifeCycleFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.processConfig, "process-config", 0, "process config ID")
	cmd.Flags().Int64Var(&f.processDb, "process-db", 0, "process database ID")
	_ = cmd.MarkFlagRequired("process-config")
	_ = cmd.MarkFlagRequired("process-db")
}

func (f *lifeCycleFlags) id() lca.ProcessLifeCycleID {
	return lca.ProcessLifeCycleID{
		ProcessConfigID: lca.ProcessConfigID(f.processConfig),
		ProcessDbID:     lca.ProcessDbID(f.processDb),
	}
}

var (
	lifecycleIDFlags lifeCycleFlags
	componentFlags   struct {
		lifeCycleFlags
		value float64
		unit  string
	}
	convertFlags struct {
		lifeCycleFlags
		value float64
		from  string
		to    string
	}
)

var lifecycleCmd = &cobra.Command{
	Use:   "lifecycle",
	Short: "Show processes and conversions of a process life cycle",
	Long: `Lifecycle prints the processes of a process config together with the
conversions its reference units need. Required conversions that are not
defined are marked missing; stored conversions beyond those are listed as
additional.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, closeStore, err := openEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		lc, err := e.LifeCycle(cmd.Context(), lifecycleIDFlags.id())
		if err != nil {
			return err
		}
		return printer(cmd).LifeCycle(lc)
	},
}

var componentCmd = &cobra.Command{
	Use:   "component",
	Short: "Indicator values of a quantity of a process config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		unit, err := lca.ParseUnit(componentFlags.unit)
		if err != nil {
			return err
		}
		e, closeStore, err := openEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		q := lca.NewQuantityFromDecimal(decimal.NewFromFloat(componentFlags.value), unit)
		result, err := e.ComponentIndicators(cmd.Context(), componentFlags.id(), q)
		if err != nil {
			return err
		}
		return printer(cmd).Components(q, result)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a quantity with the conversions of a process config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		from, err := lca.ParseUnit(convertFlags.from)
		if err != nil {
			return err
		}
		to, err := lca.ParseUnit(convertFlags.to)
		if err != nil {
			return err
		}
		e, closeStore, err := openEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		q := lca.NewQuantityFromDecimal(decimal.NewFromFloat(convertFlags.value), from)
		converted, err := e.Convert(cmd.Context(), convertFlags.id(), q, to)
		if err != nil {
			return err
		}
		return printer(cmd).Conversion(q, converted)
	},
}

func init() {
	lifecycleIDFlags.register(lifecycleCmd)

	componentFlags.register(componentCmd)
	componentCmd.Flags().Float64Var(&componentFlags.value, "value", 1, "quantity value")
	componentCmd.Flags().StringVar(&componentFlags.unit, "unit", "", "quantity unit")
	_ = componentCmd.MarkFlagRequired("unit")

	convertFlags.register(convertCmd)
	convertCmd.Flags().Float64Var(&convertFlags.value, "value", 1, "quantity value")
	convertCmd.Flags().StringVar(&convertFlags.from, "from", "", "source unit")
	convertCmd.Flags().StringVar(&convertFlags.to, "to", "", "target unit")
	_ = convertCmd.MarkFlagRequired("from")
	_ = convertCmd.MarkFlagRequired("to")
}
