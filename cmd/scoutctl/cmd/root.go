package cmd

import (
	"time"

	"github.com/spf13/cobra"

	scout "github.com/woodrim/go-scout"
)

var (
	device   string
	baudRate int
	periodMs int
	virtual  bool
)

var rootCmd = &cobra.Command{
	Use:   "scoutctl",
	Short: "Command-line driver for the scout mobile base",
	Long: `scoutctl talks to a scout mobile base over CAN or a serial link.

A baud rate of 0 (the default) selects the CAN interface named by --device;
any other baud rate selects a serial port at that rate.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&device, "device", "d", "can0", "CAN interface or serial device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 0, "baud rate, 0 selects CAN")
	rootCmd.PersistentFlags().IntVar(&periodMs, "period", 10, "control loop period in milliseconds")
	rootCmd.PersistentFlags().BoolVar(&virtual, "virtual", false, "use an in-memory transport instead of hardware")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openBase() (*scout.Base, error) {
	opts := []scout.Option{
		scout.WithControlPeriod(time.Duration(periodMs) * time.Millisecond),
	}
	if virtual {
		if baudRate == 0 {
			opts = append(opts, scout.WithCANTransport(scout.NewVirtualFrameTransport()))
		} else {
			opts = append(opts, scout.WithSerialTransport(scout.NewVirtualStreamTransport()))
		}
	}
	base, err := scout.New(opts...)
	if err != nil {
		return nil, err
	}
	base.Connect(device, baudRate)
	return base, nil
}
