package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	scout "github.com/woodrim/go-scout"
)

var (
	driveLinear   float64
	driveAngular  float64
	driveDuration time.Duration
	driveClear    bool
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Send a constant velocity command",
	Long: `Drive the base at a fixed linear/angular velocity for a set duration.

The command is clamped to the base's velocity limits and resent at the
control-loop rate until the duration expires or the process is interrupted.`,
	RunE: runDrive,
}

func init() {
	driveCmd.Flags().Float64Var(&driveLinear, "linear", 0, "linear velocity m/s")
	driveCmd.Flags().Float64Var(&driveAngular, "angular", 0, "angular velocity rad/s")
	driveCmd.Flags().DurationVar(&driveDuration, "duration", 5*time.Second, "how long to drive")
	driveCmd.Flags().BoolVar(&driveClear, "clear-fault", false, "clear latched faults with the first command")
	rootCmd.AddCommand(driveCmd)
}

func runDrive(cmd *cobra.Command, args []string) error {
	base, err := openBase()
	if err != nil {
		return err
	}
	defer base.Close()

	flag := scout.FaultClearNone
	if driveClear {
		flag = scout.FaultClearAll
	}
	base.SetMotionCommand(driveLinear, driveAngular, flag)
	fmt.Printf("driving linear=%.2f m/s angular=%.2f rad/s for %v\n", driveLinear, driveAngular, driveDuration)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	deadline := time.NewTimer(driveDuration)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			fmt.Println("interrupted, stopping")
			base.SetMotionCommand(0, 0, scout.FaultClearNone)
			return nil
		case <-deadline.C:
			base.SetMotionCommand(0, 0, scout.FaultClearNone)
			fmt.Println("done")
			return nil
		case <-ticker.C:
			state := base.GetRobotState()
			fmt.Printf("feedback linear=%.3f m/s angular=%.3f rad/s battery=%.1f V\n",
				state.LinearVelocity, state.AngularVelocity, state.BatteryVoltage)
		}
	}
}
